package pubmed

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXMLText_FlattensInlineMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `<T>Simple title</T>`, "Simple title"},
		{"italic", `<T>Role of <i>TP53</i> in tumors</T>`, "Role of TP53 in tumors"},
		{"nested", `<T>A <b>bold <i>and italic</i></b> mix</T>`, "A bold and italic mix"},
		{"whitespace", "<T>\n  spread \t over\n lines </T>", "spread over lines"},
		{"empty", `<T></T>`, ""},
		{"self closing", `<T/>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got xmlText
			require.NoError(t, xml.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestArticle_MissingCitation(t *testing.T) {
	var a Article
	assert.Empty(t, a.PMID())
	assert.Empty(t, a.Title())
	assert.Empty(t, a.AbstractText())
	assert.Empty(t, a.Year())
}

func TestArticleSet_SingleArticleDecodesAsSlice(t *testing.T) {
	doc := `<PubmedArticleSet><PubmedArticle><MedlineCitation><PMID>5</PMID>
<Article><ArticleTitle>T</ArticleTitle><Abstract><AbstractText>   </AbstractText><AbstractText>Only this.</AbstractText></Abstract></Article>
</MedlineCitation></PubmedArticle></PubmedArticleSet>`

	var set ArticleSet
	require.NoError(t, xml.Unmarshal([]byte(doc), &set))
	require.Len(t, set.Articles, 1)
	assert.Equal(t, "Only this.", set.Articles[0].AbstractText())
	assert.Empty(t, set.Articles[0].Year())
}
