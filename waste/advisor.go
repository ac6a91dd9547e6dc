package waste

import "strings"

// Info is the disposal recommendation for a material group.
type Info struct {
	Category string `json:"category"`
	Details  string `json:"details"`
}

const (
	GroupPlastic = "Plastik"
	GroupPaper   = "Kağıt/Karton"
	GroupGlass   = "Cam"
	GroupMetal   = "Metal"
	GroupOrganic = "Organik"
	GroupUnknown = "Bilinmiyor"
)

var table = map[string]Info{
	GroupPlastic: {
		Category: "Mavi Atık Kutusu (Geri Dönüşüm)",
		Details:  "Temiz ve kuru plastikleri (şişe, kap, ambalaj) buraya atın. Yağlı veya kirli plastikleri genel çöpe atın.",
	},
	GroupPaper: {
		Category: "Mavi Atık Kutusu (Geri Dönüşüm)",
		Details:  "Gazete, dergi, karton kutu gibi temiz kağıtları buraya atın. Islak, yağlı kağıtlar veya peçeteler geri dönüştürülemez.",
	},
	GroupGlass: {
		Category: "Yeşil Atık Kutusu (Geri Dönüşüm)",
		Details:  "Sadece cam şişe ve kavanozları buraya atın. Ampul, pencere camı, ayna veya porselen atmayın.",
	},
	GroupMetal: {
		Category: "Gri Atık Kutusu (Geri Dönüşüm)",
		Details:  "İçecek kutuları, konserve kutuları gibi metal ambalajları buraya atın. Piller veya elektronik atıkları buraya atmayın.",
	},
	GroupOrganic: {
		Category: "Kahverengi Atık Kutusu (Kompost) veya Genel Çöp",
		Details:  "Meyve/sebze artıkları, yumurta kabukları gibi organik atıklar kompost yapılabilir.",
	},
	GroupUnknown: {
		Category: "Genel Çöp (Gri/Siyah Kutu)",
		Details:  "Materyal türü belirlenemedi veya geri dönüştürülemez.",
	},
}

// Group collapses a material label into its disposal group.
func Group(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "plastik"):
		return GroupPlastic
	case strings.Contains(l, "kağıt"), strings.Contains(l, "kağit"), strings.Contains(l, "karton"):
		return GroupPaper
	case strings.Contains(l, "cam"):
		return GroupGlass
	case strings.Contains(l, "metal"):
		return GroupMetal
	case strings.Contains(l, "organik"):
		return GroupOrganic
	default:
		return GroupUnknown
	}
}

// Lookup returns the disposal advice for a material label. Unrecognized labels get the
// general-waste entry.
func Lookup(label string) Info {
	return table[Group(label)]
}
