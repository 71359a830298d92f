package pubmed

import (
	"encoding/xml"
	"strings"
)

// ArticleSet 对应 efetch 返回的 <PubmedArticleSet>，单篇结果同样解码为切片。
type ArticleSet struct {
	XMLName  xml.Name  `xml:"PubmedArticleSet"`
	Articles []Article `xml:"PubmedArticle"`
}

// Article 对应 <PubmedArticle>。只解码检索流程用到的字段。
type Article struct {
	MedlineCitation *MedlineCitation `xml:"MedlineCitation"`
}

type MedlineCitation struct {
	PMID    xmlText     `xml:"PMID"`
	Article ArticleData `xml:"Article"`
}

type ArticleData struct {
	Journal      Journal   `xml:"Journal"`
	ArticleTitle xmlText   `xml:"ArticleTitle"`
	Abstract     *Abstract `xml:"Abstract"`
}

type Abstract struct {
	AbstractText []xmlText `xml:"AbstractText"`
}

type Journal struct {
	JournalIssue struct {
		PubDate struct {
			Year        string `xml:"Year"`
			MedlineDate string `xml:"MedlineDate"`
		} `xml:"PubDate"`
	} `xml:"JournalIssue"`
}

// xmlText 把任意元素展平成纯文本：内联标记（<i>、<sup>、<b> 等）被去掉，
// 只保留其中的字符数据，连续空白折叠为单个空格。
type xmlText string

func (t *xmlText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(v)
		}
	}
	*t = xmlText(Flatten(sb.String()))
	return nil
}

// Flatten 折叠空白并去掉首尾空白。
func Flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// PMID 返回文献编号，缺少 MedlineCitation 时为空。
func (a Article) PMID() string {
	if a.MedlineCitation == nil {
		return ""
	}
	return string(a.MedlineCitation.PMID)
}

// Title 返回展平后的标题。
func (a Article) Title() string {
	if a.MedlineCitation == nil {
		return ""
	}
	return string(a.MedlineCitation.Article.ArticleTitle)
}

// AbstractText 返回展平后的摘要，多段之间以单个空格连接，空段被跳过。
func (a Article) AbstractText() string {
	if a.MedlineCitation == nil || a.MedlineCitation.Article.Abstract == nil {
		return ""
	}
	parts := make([]string, 0, len(a.MedlineCitation.Article.Abstract.AbstractText))
	for _, seg := range a.MedlineCitation.Article.Abstract.AbstractText {
		if s := string(seg); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Year 返回出版年份。<Year> 缺失时尝试 <MedlineDate>（如 "2019 Nov-Dec"）的前四位。
func (a Article) Year() string {
	if a.MedlineCitation == nil {
		return ""
	}
	pd := a.MedlineCitation.Article.Journal.JournalIssue.PubDate
	if y := strings.TrimSpace(pd.Year); y != "" {
		return y
	}
	md := strings.TrimSpace(pd.MedlineDate)
	if len(md) >= 4 && isDigits(md[:4]) {
		return md[:4]
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
