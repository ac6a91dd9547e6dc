package material

func tagRule(name string, m Material, tags ...string) Rule {
	return Rule{
		Name:     name,
		Match:    func(e Evidence) bool { return e.hasTag(tags...) },
		Material: m,
	}
}

func textRule(name string, m Material, phrases ...string) Rule {
	return Rule{
		Name:     name,
		Match:    func(e Evidence) bool { return e.mentions(phrases...) },
		Material: m,
	}
}

// rules is evaluated top to bottom; the first match wins. Tag rules come first so a
// controlled tag always beats free text.
var rules = []Rule{
	tagRule("tag:glass", Glass, "en:glass-bottle", "en:glass-jar"),
	tagRule("tag:pet", PlasticPET, "en:pet-bottle", "en:plastic-bottle"),
	tagRule("tag:hdpe", PlasticHDPE, "en:hdpe"),
	tagRule("tag:ldpe", PlasticLDPE, "en:ldpe"),
	tagRule("tag:pp", PlasticPP, "en:pp", "en:polypropylene"),
	tagRule("tag:ps", PlasticPS, "en:ps", "en:polystyrene"),
	tagRule("tag:pvc", PlasticPVC, "en:pvc"),
	tagRule("tag:plastic", Plastic, "en:plastic"),
	tagRule("tag:carton", Cardboard, "en:carton"),
	tagRule("tag:paper", PaperCarton, "en:paper"),
	tagRule("tag:can", Metal, "en:metal-can", "en:aluminium-can", "en:steel-can"),
	tagRule("tag:aluminium", Metal, "en:aluminium"),

	textRule("text:glass-bottle", Glass, "cam şişe", "glass bottle"),
	textRule("text:glass-jar", Glass, "cam kavanoz", "glass jar"),
	textRule("text:pet-bottle", PlasticPET, "pet şişe", "pet bottle"),
	textRule("text:plastic-bottle", Plastic, "plastik şişe", "plastic bottle"),
	textRule("text:plastic-container", Plastic, "plastik kap", "plastic container"),
	textRule("text:cardboard-box", Cardboard, "karton kutu", "cardboard box", "tetra pak", "tetra brik"),
	textRule("text:paper", PaperCarton, "kağıt", "kağit", "paper"),
	{
		Name: "text:metal-can",
		Match: func(e Evidence) bool {
			return e.mentions("metal kutu", "tin can", "metal can") || containsAny(e.Name, "teneke kutu")
		},
		Material: Metal,
	},
	textRule("text:aluminium", Metal, "alüminyum", "aluminum"),
	textRule("text:glass", Glass, "cam", "glass"),
	textRule("text:plastic", Plastic, "plastik", "plastic"),
	textRule("text:cardboard", Cardboard, "karton", "cardboard"),
	textRule("text:metal", Metal, "metal"),
}

func containsAny(s string, phrases ...string) bool {
	return Evidence{Text: s}.mentions(phrases...)
}
