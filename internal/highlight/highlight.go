// Package highlight wraps medical-specialist terms in emphasis markup.
// The term table carries several language variants per speciality and
// matching is case-insensitive and whole-word. Each variant is applied
// independently in table order; overlapping variants are not arbitrated,
// which preserves the original client's behavior.
package highlight

import (
	"regexp"
	"sync"
)

// Term is one speciality with its language variants, in the order they
// are applied: English, French, Arabic, Darija.
type Term struct {
	EN     string
	FR     string
	AR     string
	Darija string
}

func (t Term) variants() []string {
	return []string{t.EN, t.FR, t.AR, t.Darija}
}

// DefaultTable is the fixed speciality table used by the chat-assist
// surface.
var DefaultTable = []Term{
	{EN: "general practitioner", FR: "médecin généraliste", AR: "طبيب عام", Darija: "طبيب عام"},
	{EN: "cardiologist", FR: "cardiologue", AR: "طبيب القلب", Darija: "طبيب ديال القلب"},
	{EN: "neurologist", FR: "neurologue", AR: "طبيب الأعصاب", Darija: "طبيب ديال الأعصاب"},
	{EN: "dermatologist", FR: "dermatologue", AR: "طبيب الجلد", Darija: "طبيب ديال الجلد"},
	{EN: "gastroenterologist", FR: "gastro-entérologue", AR: "طبيب الجهاز الهضمي", Darija: "طبيب ديال المصران"},
	{EN: "pediatrician", FR: "pédiatre", AR: "طبيب الأطفال", Darija: "طبيب ديال الدراري"},
	{EN: "psychiatrist", FR: "psychiatre", AR: "طبيب نفسي", Darija: "طبيب ديال النفسية"},
	{EN: "dentist", FR: "dentiste", AR: "طبيب الأسنان", Darija: "طبيب ديال السنان"},
	{EN: "orthopedist", FR: "orthopédiste", AR: "طبيب العظام", Darija: "طبيب ديال العظام"},
	{EN: "urologist", FR: "urologue", AR: "طبيب المسالك البولية", Darija: "طبيب ديال البول"},
	{EN: "gynecologist", FR: "gynécologue", AR: "طبيب النساء", Darija: "طبيب ديال العيالات"},
	{EN: "endocrinologist", FR: "endocrinologue", AR: "طبيب الغدد الصماء", Darija: "طبيب ديال الغدد"},
	{EN: "ophthalmologist", FR: "ophtalmologue", AR: "طبيب العيون", Darija: "طبيب ديال العينين"},
	{EN: "pulmonologist", FR: "pneumologue", AR: "طبيب الرئة", Darija: "طبيب ديال الرئة"},
	{EN: "oncologist", FR: "oncologue", AR: "طبيب الأورام", Darija: "طبيب ديال السرطان"},
	{EN: "hematologist", FR: "hématologue", AR: "طبيب الدم", Darija: "طبيب ديال الدم"},
	{EN: "rheumatologist", FR: "rhumatologue", AR: "طبيب الروماتيزم", Darija: "طبيب ديال الروماتيزم"},
	{EN: "nephrologist", FR: "néphrologue", AR: "طبيب الكلى", Darija: "طبيب ديال الكلي"},
	{EN: "infectious disease specialist", FR: "infectiologue", AR: "طبيب الأمراض المعدية", Darija: "طبيب ديال الميكروبات"},
}

// Highlighter applies emphasis markers to term occurrences.
type Highlighter struct {
	left, right string
	table       []Term

	once     sync.Once
	patterns []variantPattern
}

type variantPattern struct {
	re      *regexp.Regexp
	variant string
}

// New returns a Highlighter over DefaultTable using the given markers,
// e.g. New("**", "**") or New("<strong>", "</strong>").
func New(left, right string) *Highlighter {
	return NewWithTable(left, right, DefaultTable)
}

// NewWithTable is New with a custom term table.
func NewWithTable(left, right string, table []Term) *Highlighter {
	return &Highlighter{left: left, right: right, table: table}
}

func (h *Highlighter) compile() {
	for _, term := range h.table {
		for _, v := range term.variants() {
			if v == "" {
				continue
			}
			re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(v) + `\b`)
			if err != nil {
				continue
			}
			h.patterns = append(h.patterns, variantPattern{re: re, variant: v})
		}
	}
}

// Apply returns text with every case-insensitive whole-word occurrence
// of any table variant wrapped in the markers. Matches are replaced
// with the table's casing of the variant, and each variant is applied
// independently in table order.
func (h *Highlighter) Apply(text string) string {
	h.once.Do(h.compile)
	out := text
	for _, p := range h.patterns {
		out = p.re.ReplaceAllString(out, h.left+p.variant+h.right)
	}
	return out
}
