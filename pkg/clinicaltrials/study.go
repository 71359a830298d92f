package clinicaltrials

import "strings"

type studiesResponse struct {
	Studies       []Study `json:"studies"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
}

// Study 对应 v2 API 中的一个 study，只包含 fields 白名单请求到的部分。
// 缺失的嵌套模块解码为零值。
type Study struct {
	ProtocolSection ProtocolSection `json:"protocolSection"`
}

// ProtocolSection 汇总检索用到的各个 module。
type ProtocolSection struct {
	IdentificationModule struct {
		NCTID      string `json:"nctId"`
		BriefTitle string `json:"briefTitle"`
	} `json:"identificationModule"`
	StatusModule struct {
		OverallStatus string `json:"overallStatus"`
	} `json:"statusModule"`
	DescriptionModule struct {
		BriefSummary string `json:"briefSummary"`
	} `json:"descriptionModule"`
	ContactsLocationsModule struct {
		CentralContacts []Contact  `json:"centralContacts"`
		Locations       []Location `json:"locations"`
	} `json:"contactsLocationsModule"`
}

// Contact 是 centralContacts 中的一个联系人。
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	// 旧版字段名
	EMail string `json:"eMail,omitempty"`
}

// Location 是试验的一个开展地点。
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// NCTID 返回去掉首尾空白的 NCT 编号。
func (s Study) NCTID() string {
	return strings.TrimSpace(s.ProtocolSection.IdentificationModule.NCTID)
}

// Title 返回 briefTitle。
func (s Study) Title() string {
	return strings.TrimSpace(s.ProtocolSection.IdentificationModule.BriefTitle)
}

// Summary 返回 briefSummary，缺失时为空串。
func (s Study) Summary() string {
	return strings.TrimSpace(s.ProtocolSection.DescriptionModule.BriefSummary)
}

// Status 返回 overallStatus 原值。
func (s Study) Status() string {
	return s.ProtocolSection.StatusModule.OverallStatus
}

// FirstLocation 返回第一个地点的 "城市, 国家"，没有地点时返回 ok=false。
func (s Study) FirstLocation() (string, bool) {
	locs := s.ProtocolSection.ContactsLocationsModule.Locations
	if len(locs) == 0 {
		return "", false
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{locs[0].City, locs[0].Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, ", "), true
}

// FirstContactEmail 返回第一个中心联系人的邮箱。
func (s Study) FirstContactEmail() (string, bool) {
	contacts := s.ProtocolSection.ContactsLocationsModule.CentralContacts
	if len(contacts) == 0 {
		return "", false
	}
	email := strings.TrimSpace(contacts[0].Email)
	if email == "" {
		email = strings.TrimSpace(contacts[0].EMail)
	}
	return email, email != ""
}
