package api

import (
	"strings"

	"github.com/saqibullah/regreen-backend/barcode"
	"github.com/saqibullah/regreen-backend/material"
	"github.com/saqibullah/regreen-backend/product"
	"github.com/saqibullah/regreen-backend/waste"
)

const (
	placeholder = "-"
	unknown     = "Bilinmiyor"
)

type AnalyzeResponse struct {
	Success         bool           `json:"success"`
	BarcodeData     string         `json:"barcode_data"`
	BarcodeType     string         `json:"barcode_type"`
	ProductFound    bool           `json:"product_found"`
	APIProvider     string         `json:"api_provider"`
	ProductName     string         `json:"product_name"`
	Brand           string         `json:"brand"`
	Categories      string         `json:"categories"`
	PackagingText   string         `json:"packaging_text"`
	IngredientsText string         `json:"ingredients_text"`
	EcoscoreGrade   string         `json:"ecoscore_grade"`
	NutriscoreGrade string         `json:"nutriscore_grade"`
	NovaGroup       string         `json:"nova_group"`
	NutrientLevels  map[string]any `json:"nutrient_levels"`
	Material        string         `json:"material"`
	WasteCategory   string         `json:"waste_category"`
	RecyclingInfo   string         `json:"recycling_info"`
}

func newAnalyzeResponse(code barcode.Result) *AnalyzeResponse {
	return &AnalyzeResponse{
		Success:         true,
		BarcodeData:     code.Payload,
		BarcodeType:     code.Symbology,
		APIProvider:     APIProvider,
		ProductName:     placeholder,
		Brand:           placeholder,
		Categories:      placeholder,
		PackagingText:   placeholder,
		IngredientsText: placeholder,
		EcoscoreGrade:   placeholder,
		NutriscoreGrade: placeholder,
		NovaGroup:       placeholder,
		NutrientLevels:  map[string]any{},
		Material:        string(material.Unknown),
		WasteCategory:   waste.GroupUnknown,
		RecyclingInfo:   "Ürün bilgisi alınamadı veya bulunamadı.",
	}
}

// applyProduct copies display fields, preferring Turkish variants.
func (r *AnalyzeResponse) applyProduct(rec product.Record) {
	r.ProductFound = true
	r.ProductName = rec.StringOr(unknown, "product_name_tr", "product_name")
	r.Brand = rec.StringOr(unknown, "brands")
	r.Categories = rec.StringOr(placeholder, "categories")
	r.PackagingText = rec.StringOr(placeholder, "packaging_text_tr", "packaging_text_en", "packaging")
	r.IngredientsText = rec.StringOr(placeholder,
		"ingredients_text_with_allergens_tr",
		"ingredients_text_with_allergens_en",
		"ingredients_text",
	)
	r.EcoscoreGrade = grade(rec, "ecoscore_grade")
	r.NutriscoreGrade = grade(rec, "nutriscore_grade")
	r.NovaGroup = rec.StringOr(placeholder, "nova_group")
	r.NutrientLevels = rec.Map("nutrient_levels")
}

func grade(rec product.Record, key string) string {
	v, ok := rec.String(key)
	if !ok {
		return unknown
	}
	return strings.ToUpper(v)
}
