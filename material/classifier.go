package material

import (
	"log/slog"
	"strings"

	"github.com/saqibullah/regreen-backend/product"
)

type Material string

const (
	Plastic     Material = "Plastik"
	PlasticPET  Material = "Plastik (PET)"
	PlasticHDPE Material = "Plastik (HDPE)"
	PlasticLDPE Material = "Plastik (LDPE)"
	PlasticPP   Material = "Plastik (PP)"
	PlasticPS   Material = "Plastik (PS)"
	PlasticPVC  Material = "Plastik (PVC)"
	Cardboard   Material = "Karton"
	PaperCarton Material = "Kağıt/Karton"
	Glass       Material = "Cam"
	Metal       Material = "Metal"
	Organic     Material = "Organik"
	Unknown     Material = "Bilinmiyor"
)

const noRuleMatched = "none"

// Evidence is the normalized view of a product the rules look at.
type Evidence struct {
	Tags map[string]struct{}
	Name string
	Text string
}

func (e Evidence) hasTag(tags ...string) bool {
	for _, tag := range tags {
		if _, ok := e.Tags[tag]; ok {
			return true
		}
	}
	return false
}

func (e Evidence) mentions(phrases ...string) bool {
	for _, phrase := range phrases {
		if strings.Contains(e.Text, phrase) {
			return true
		}
	}
	return false
}

// Rule maps a predicate over the evidence to a material.
type Rule struct {
	Name     string
	Match    func(Evidence) bool
	Material Material
}

// NewEvidence collects packaging text, name, packaging tags and category tags.
func NewEvidence(rec product.Record) Evidence {
	packagingTags := rec.Strings("packaging_tags")
	categoryTags := rec.Strings("categories_tags")

	tags := make(map[string]struct{}, len(packagingTags))
	for _, tag := range packagingTags {
		tags[tag] = struct{}{}
	}

	packaging := strings.ToLower(rec.StringOr("", "packaging_text_tr", "packaging_text_en", "packaging"))
	name := strings.ToLower(rec.StringOr("", "product_name_tr", "product_name"))
	text := strings.Join([]string{
		packaging,
		name,
		strings.Join(packagingTags, " "),
		strings.Join(categoryTags, " "),
	}, " ")

	return Evidence{
		Tags: tags,
		Name: name,
		Text: strings.ToLower(text),
	}
}

// Classify returns the packaging material of rec, Unknown when no rule matches.
func Classify(rec product.Record) Material {
	m, _ := Explain(rec)
	return m
}

// Explain is Classify plus the name of the rule that decided.
func Explain(rec product.Record) (Material, string) {
	ev := NewEvidence(rec)
	slog.Debug("material_evidence", "text", truncate(ev.Text, 200))

	for _, rule := range rules {
		if rule.Match(ev) {
			return rule.Material, rule.Name
		}
	}
	return Unknown, noRuleMatched
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
