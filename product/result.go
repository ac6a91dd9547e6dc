package product

import (
	"fmt"
	"strings"
)

type FailureKind string

const (
	FailureMissingBarcode  FailureKind = "missing_barcode"
	FailureTimeout         FailureKind = "timeout"
	FailureNetwork         FailureKind = "network_error"
	FailureNotFoundStatus  FailureKind = "http_404"
	FailureHTTPStatus      FailureKind = "http_error"
	FailureProductNotFound FailureKind = "product_not_found"
	FailureUnparseable     FailureKind = "unparseable"
	FailureUnavailable     FailureKind = "unavailable"
)

// Failure describes why a lookup produced no product. It is a value, not an error:
// callers branch on Kind and show Message to the user.
type Failure struct {
	Kind       FailureKind
	StatusCode int
	Verbose    string
	Err        error
}

// Message is the advisory text surfaced in the analyze response.
func (f *Failure) Message() string {
	if f == nil {
		return ""
	}
	switch f.Kind {
	case FailureMissingBarcode:
		return "Barkod numarası sağlanmadı."
	case FailureTimeout:
		return "Ürün bilgisi alınırken zaman aşımı yaşandı."
	case FailureNetwork:
		return "Ürün bilgisi alınırken ağ hatası oluştu."
	case FailureNotFoundStatus:
		return "Bu barkod için ürün bilgisi bulunamadı (API 404)."
	case FailureHTTPStatus:
		return fmt.Sprintf("Ürün bilgisi alınırken API hatası oluştu (%d).", f.StatusCode)
	case FailureProductNotFound:
		verbose := strings.TrimSpace(f.Verbose)
		if verbose == "" {
			verbose = "Ürün bulunamadı."
		}
		return fmt.Sprintf("Bu barkod için ürün bilgisi bulunamadı (%s)", verbose)
	case FailureUnparseable:
		return "Ürün bilgisi API yanıtı işlenemedi."
	case FailureUnavailable:
		return "Ürün bilgisi servisi geçici olarak kullanılamıyor."
	default:
		return "Ürün bilgisi alınamadı veya bulunamadı."
	}
}

// Result holds exactly one of Product or Failure.
type Result struct {
	Product Record
	Failure *Failure
}

func (r Result) Found() bool {
	return r.Failure == nil && len(r.Product) > 0
}

func found(rec Record) Result {
	return Result{Product: rec}
}

func failed(kind FailureKind, err error) Result {
	return Result{Failure: &Failure{Kind: kind, Err: err}}
}
