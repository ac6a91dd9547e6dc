package api

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saqibullah/regreen-backend/barcode"
	"github.com/saqibullah/regreen-backend/material"
	"github.com/saqibullah/regreen-backend/metrics"
	"github.com/saqibullah/regreen-backend/product"
	"github.com/saqibullah/regreen-backend/waste"
)

const (
	formField   = "imageFile"
	APIProvider = "gozxing + Open Food Facts"
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

type BarcodeDecoder interface {
	Decode(data []byte) (barcode.Result, error)
}

type ProductLookup interface {
	Lookup(ctx context.Context, barcode string) product.Result
}

type Handler struct {
	decoder  BarcodeDecoder
	products ProductLookup
	metrics  *metrics.Metrics
}

// NewHandler wires the analyze pipeline. m may be nil.
func NewHandler(decoder BarcodeDecoder, products ProductLookup, m *metrics.Metrics) *Handler {
	return &Handler{
		decoder:  decoder,
		products: products,
		metrics:  m,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Analyze decodes the uploaded barcode, looks the product up and returns disposal advice.
func (h *Handler) Analyze(c *gin.Context) {
	log := loggerFrom(c)
	log.Info("analyze_request_received")

	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	code, err := h.decoder.Decode(data)
	if err != nil {
		h.metrics.RecordBarcode(decodeOutcome(err), "")
		h.writeDecodeError(c, err)
		return
	}
	h.metrics.RecordBarcode("decoded", code.Symbology)
	log.Info("barcode_decoded", "barcode", code.Payload, "symbology", code.Symbology)

	resp := newAnalyzeResponse(code)
	if code.Payload == "" {
		resp.RecyclingInfo = "Bu barkod için ürün bilgisi Open Food Facts veritabanında bulunamadı."
		c.JSON(http.StatusOK, resp)
		return
	}

	start := time.Now()
	lookup := h.products.Lookup(c.Request.Context(), code.Payload)
	if !lookup.Found() {
		failure := lookup.Failure
		if failure == nil {
			failure = &product.Failure{Kind: product.FailureProductNotFound}
		}
		h.metrics.RecordLookup(string(failure.Kind), time.Since(start))
		log.Warn("product_lookup_failed", "barcode", code.Payload, "reason", failure.Kind, "error", failure.Err)
		resp.RecyclingInfo = failure.Message()
		c.JSON(http.StatusOK, resp)
		return
	}
	h.metrics.RecordLookup("found", time.Since(start))

	resp.applyProduct(lookup.Product)
	m, rule := material.Explain(lookup.Product)
	h.metrics.RecordMaterial(string(m), rule)
	info := waste.Lookup(string(m))
	resp.Material = string(m)
	resp.WasteCategory = info.Category
	resp.RecyclingInfo = info.Details
	log.Info("material_classified", "barcode", code.Payload, "material", m, "rule", rule, "waste_category", info.Category)

	c.JSON(http.StatusOK, resp)
}

// readUpload validates the multipart field before any decoding work.
func (h *Handler) readUpload(c *gin.Context) ([]byte, bool) {
	fileHeader, err := c.FormFile(formField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(c, http.StatusBadRequest, "Görsel dosyası çok büyük.")
		case emptyFileSelected(c):
			writeError(c, http.StatusBadRequest, "Lütfen bir görsel dosyası seçin.")
		default:
			writeError(c, http.StatusBadRequest, "Görsel dosyası istekte bulunamadı.")
		}
		return nil, false
	}
	if strings.TrimSpace(fileHeader.Filename) == "" {
		writeError(c, http.StatusBadRequest, "Lütfen bir görsel dosyası seçin.")
		return nil, false
	}

	mediaType, _, err := mime.ParseMediaType(fileHeader.Header.Get("Content-Type"))
	if err != nil || !allowedMimeTypes[mediaType] {
		loggerFrom(c).Warn("upload_rejected", "filename", fileHeader.Filename, "content_type", fileHeader.Header.Get("Content-Type"))
		writeError(c, http.StatusBadRequest, "Desteklenmeyen resim türü (JPG, PNG).")
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		writeProcessingError(c, err)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeProcessingError(c, err)
		return nil, false
	}
	loggerFrom(c).Info("upload_received", "filename", fileHeader.Filename, "size", fileHeader.Size, "content_type", mediaType)
	return data, true
}

// emptyFileSelected reports a file input submitted without a file: the part arrives with
// an empty filename and the multipart reader files it as a plain value.
func emptyFileSelected(c *gin.Context) bool {
	form := c.Request.MultipartForm
	return form != nil && len(form.Value[formField]) > 0
}

func (h *Handler) writeDecodeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, barcode.ErrNoBarcode):
		writeError(c, http.StatusNotFound, "Görselde okunabilir barkod bulunamadı.")
	case errors.Is(err, barcode.ErrUnreadableEncoding):
		writeError(c, http.StatusBadRequest, "Barkod verisi okundu ancak karakter kodlaması anlaşılamadı.")
	case errors.Is(err, barcode.ErrDecoderUnavailable):
		loggerFrom(c).Error("barcode_decoder_unavailable", "error", err)
		writeError(c, http.StatusInternalServerError, "Sunucu hatası: Gerekli bir kütüphane ("+barcode.Library+") eksik/kurulamadı.")
	default:
		writeProcessingError(c, err)
	}
}

func decodeOutcome(err error) string {
	switch {
	case errors.Is(err, barcode.ErrNoBarcode):
		return "not_found"
	case errors.Is(err, barcode.ErrUnreadableEncoding):
		return "unreadable"
	case errors.Is(err, barcode.ErrDecoderUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

func writeProcessingError(c *gin.Context, err error) {
	loggerFrom(c).Error("analyze_processing_failed", "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Görsel işlenirken veya barkod okunurken bir hata oluştu.",
		"details": err.Error(),
	})
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}
