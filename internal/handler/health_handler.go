package handler

import (
	"net/http"

	"curalink-go/pkg/log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler 提供数据库连通性探测。
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// TestDB 处理 GET /api/test-db，返回数据库当前时间。
func (h *HealthHandler) TestDB(c *gin.Context) {
	var dbTime string
	if err := h.db.WithContext(c.Request.Context()).Raw("SELECT CURRENT_TIMESTAMP").Scan(&dbTime).Error; err != nil {
		log.Error("[HealthHandler] 数据库探测失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "API is running!",
		"db_time": dbTime,
	})
}
