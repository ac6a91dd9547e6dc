package material

import (
	"testing"

	"github.com/saqibullah/regreen-backend/product"
)

func tags(values ...string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		rec  product.Record
		want Material
		rule string
	}{
		{name: "pet tag", rec: product.Record{"packaging_tags": tags("en:pet-bottle")}, want: PlasticPET, rule: "tag:pet"},
		{name: "glass bottle tag", rec: product.Record{"packaging_tags": tags("en:glass-bottle")}, want: Glass, rule: "tag:glass"},
		{name: "hdpe tag", rec: product.Record{"packaging_tags": tags("en:hdpe")}, want: PlasticHDPE, rule: "tag:hdpe"},
		{name: "polypropylene tag", rec: product.Record{"packaging_tags": tags("en:polypropylene")}, want: PlasticPP, rule: "tag:pp"},
		{name: "carton tag", rec: product.Record{"packaging_tags": tags("en:carton")}, want: Cardboard, rule: "tag:carton"},
		{name: "steel can tag", rec: product.Record{"packaging_tags": tags("en:steel-can")}, want: Metal, rule: "tag:can"},
		{name: "turkish glass jar text", rec: product.Record{"packaging_text_tr": "Cam Kavanoz"}, want: Glass, rule: "text:glass-jar"},
		{name: "pet text in name", rec: product.Record{"product_name_tr": "Doğal Kaynak Suyu PET Şişe"}, want: PlasticPET, rule: "text:pet-bottle"},
		{name: "tetra pak", rec: product.Record{"packaging": "Tetra Pak"}, want: Cardboard, rule: "text:cardboard-box"},
		{name: "paper", rec: product.Record{"packaging_text_en": "paper bag"}, want: PaperCarton, rule: "text:paper"},
		{name: "teneke kutu in name", rec: product.Record{"product_name": "Teneke Kutu Zeytinyağı"}, want: Metal, rule: "text:metal-can"},
		{name: "aluminum text", rec: product.Record{"packaging": "aluminum foil"}, want: Metal, rule: "text:aluminium"},
		{name: "category tag text", rec: product.Record{"categories_tags": tags("en:plastic-wrapped-snacks")}, want: Plastic, rule: "text:plastic"},
		{name: "bare metal", rec: product.Record{"packaging": "Metal"}, want: Metal, rule: "text:metal"},
		{name: "localized text preferred", rec: product.Record{"packaging_text_tr": "karton", "packaging_text_en": "glass"}, want: Cardboard, rule: "text:cardboard"},
		{name: "nothing known", rec: product.Record{"product_name": "Çikolata"}, want: Unknown, rule: noRuleMatched},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, rule := Explain(tc.rec)
			if got != tc.want {
				t.Fatalf("expected %q, got %q (rule %s)", tc.want, got, rule)
			}
			if rule != tc.rule {
				t.Fatalf("expected rule %s, got %s", tc.rule, rule)
			}
		})
	}
}

func TestClassifyTagBeatsText(t *testing.T) {
	rec := product.Record{
		"packaging_tags":    tags("en:glass-jar"),
		"packaging_text_en": "plastic bottle",
	}
	if got := Classify(rec); got != Glass {
		t.Fatalf("expected tag to win with %q, got %q", Glass, got)
	}
}

func TestClassifyMissingFieldsReturnsUnknown(t *testing.T) {
	records := []product.Record{
		nil,
		{},
		{"packaging_tags": nil, "categories_tags": nil},
		{"packaging_tags": "en:glass", "product_name": 42.0},
		{"packaging": nil, "packaging_text_tr": "", "product_name_tr": nil},
		{"packaging_tags": tags(), "categories_tags": []any{1.0, true}},
	}
	for i, rec := range records {
		if got := Classify(rec); got != Unknown {
			t.Fatalf("record %d: expected %q, got %q", i, Unknown, got)
		}
	}
}

func TestRuleNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, rule := range rules {
		if seen[rule.Name] {
			t.Fatalf("duplicate rule name %s", rule.Name)
		}
		seen[rule.Name] = true
	}
}
