package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_Annotation(t *testing.T) {
	in := "[뜻]{주석: 설명}"

	withNotes := Render(in, Options{ShowNotes: true})
	assert.Equal(t,
		`<span class="annotation">뜻<sup>!</sup><span class="note" role="note" data-note-type="주석">설명</span></span>`,
		withNotes)

	assert.Equal(t, "뜻", Render(in, Options{ShowNotes: false}))
}

func TestRender_Small(t *testing.T) {
	assert.Equal(t, `本文<small class="small-text">注</small>`, Render("本文~注~", Options{}))
}

func TestRender_SmallInsideAnnotation(t *testing.T) {
	out := Render("[~小~字]{주석: 작은 글자}", Options{ShowNotes: true})
	assert.Contains(t, out, `<span class="annotation"><small class="small-text">小</small>字<sup>!</sup>`)
	assert.Contains(t, out, `>작은 글자</span>`)
}

func TestRender_EscapesInput(t *testing.T) {
	out := Render(`<script>alert(1)</script>[a]{x: "b"}`, Options{ShowNotes: true})
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "&#34;b&#34;")
}

func TestRender_NoteWithoutType(t *testing.T) {
	out := Render("[陰陽]{설명만}", Options{ShowNotes: true})
	assert.Equal(t,
		`<span class="annotation">陰陽<sup>!</sup><span class="note" role="note">설명만</span></span>`,
		out)
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "", Render("", Options{ShowNotes: true}))
}

func TestRender_Unbalanced(t *testing.T) {
	in := "[뜻{주석: 설명} ~열린"
	assert.Equal(t, in, Render(in, Options{ShowNotes: true}))
}

func TestPlain(t *testing.T) {
	in := "天地~之~[道]{주석: 길}也"
	assert.Equal(t, "天地之道 (길)也", Plain(in, Options{ShowNotes: true}))
	assert.Equal(t, "天地之道也", Plain(in, Options{ShowNotes: false}))
}

func TestParse(t *testing.T) {
	got := Parse("[뜻]{주석: 설명} 그리고 [氣]{原註：기운} [말]{본문}")
	assert.Equal(t, []Annotation{
		{Surface: "뜻", Type: "주석", Description: "설명"},
		{Surface: "氣", Type: "原註", Description: "기운"},
		{Surface: "말", Type: "", Description: "본문"},
	}, got)
	assert.Empty(t, Parse("no notes here"))
}

func TestRender_DelimiterEdgeCases(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{"empty surface", "[]{주석: 설명}",
			`<span class="annotation"><sup>!</sup><span class="note" role="note" data-note-type="주석">설명</span></span>`},
		{"nested open bracket joins the surface", "[a[b]{c: d}",
			`<span class="annotation">a[b<sup>!</sup><span class="note" role="note" data-note-type="c">d</span></span>`},
		{"first closing brace ends the note", "[x]{y: z}}",
			`<span class="annotation">x<sup>!</sup><span class="note" role="note" data-note-type="y">z</span></span>}`},
		{"empty small span", "a~~b", `a<small class="small-text"></small>b`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, Render(tc.in, Options{ShowNotes: true}))
		})
	}
}

func TestParse_EmptySurface(t *testing.T) {
	assert.Equal(t, []Annotation{{Surface: "", Type: "주석", Description: "설명"}}, Parse("[]{주석: 설명}"))
	assert.Equal(t, " (설명)", Plain("[]{주석: 설명}", Options{ShowNotes: true}))
}
