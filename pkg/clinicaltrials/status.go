package clinicaltrials

import (
	"fmt"
	"strings"
)

// StudyStatus 是 v2 API 的 overallStatus 枚举值。
type StudyStatus string

const (
	StatusActiveNotRecruiting     StudyStatus = "ACTIVE_NOT_RECRUITING"
	StatusCompleted               StudyStatus = "COMPLETED"
	StatusEnrollingByInvitation   StudyStatus = "ENROLLING_BY_INVITATION"
	StatusNotYetRecruiting        StudyStatus = "NOT_YET_RECRUITING"
	StatusRecruiting              StudyStatus = "RECRUITING"
	StatusSuspended               StudyStatus = "SUSPENDED"
	StatusTerminated              StudyStatus = "TERMINATED"
	StatusWithdrawn               StudyStatus = "WITHDRAWN"
	StatusAvailable               StudyStatus = "AVAILABLE"
	StatusNoLongerAvailable       StudyStatus = "NO_LONGER_AVAILABLE"
	StatusTemporarilyNotAvailable StudyStatus = "TEMPORARILY_NOT_AVAILABLE"
	StatusApprovedForMarketing    StudyStatus = "APPROVED_FOR_MARKETING"
	StatusWithheld                StudyStatus = "WITHHELD"
	StatusUnknown                 StudyStatus = "UNKNOWN"
)

// StatusAll 表示不过滤
const StatusAll = "ALL"

var knownStatuses = map[StudyStatus]struct{}{
	StatusActiveNotRecruiting:     {},
	StatusCompleted:               {},
	StatusEnrollingByInvitation:   {},
	StatusNotYetRecruiting:        {},
	StatusRecruiting:              {},
	StatusSuspended:               {},
	StatusTerminated:              {},
	StatusWithdrawn:               {},
	StatusAvailable:               {},
	StatusNoLongerAvailable:       {},
	StatusTemporarilyNotAvailable: {},
	StatusApprovedForMarketing:    {},
	StatusWithheld:                {},
	StatusUnknown:                 {},
}

// ParseStatus 解析前端传入的状态过滤值，大小写不敏感。
// 空字符串与 "ALL" 返回空状态，表示不过滤。
func ParseStatus(s string) (StudyStatus, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == StatusAll {
		return "", nil
	}
	st := StudyStatus(s)
	if _, ok := knownStatuses[st]; !ok {
		return "", fmt.Errorf("unknown overall status %q", s)
	}
	return st, nil
}
