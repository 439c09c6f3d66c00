package config

// Default returns the built-in configuration. [Load] decodes the user's file
// over this value, so any field absent from the file keeps its default.
//
// The word lists were tuned against legislative hearing transcripts; they are
// starting points, not universal truths. Operators extend or replace them per
// corpus.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: LogInfo},
		Pipeline: PipelineConfig{
			Workers:      4,
			ContextWidth: 50,
		},
		Sources: SourcesConfig{
			Capitalized: CapitalizedConfig{
				Enabled:    true,
				Connectors: defaultConnectors(),
			},
			Titled: TitledConfig{
				Enabled:       true,
				MaxNameTokens: 3,
				Titles:        defaultTitles(),
			},
			Introductions: IntroductionsConfig{Enabled: true},
		},
		Filter: FilterConfig{
			StopPhrases:        defaultStopPhrases(),
			MinLength:          2,
			MaxLength:          50,
			StartStopWords:     defaultBoundaryStopWords(),
			EndStopWords:       defaultBoundaryStopWords(),
			EmbeddedTitleWords: defaultEmbeddedTitleWords(),
		},
		Normalize: NormalizeConfig{
			StripTitles: defaultStripTitles(),
		},
		Thresholds: ThresholdsConfig{
			MinimumToKeep: 1,
			Medium:        3,
			High:          10,
		},
		Clustering: ClusteringConfig{
			Similarity:   0.85,
			Independence: 100,
			ReviewMargin: 0.05,
		},
	}
}

// defaultConnectors lists lowercase name particles permitted between
// capitalized tokens in the broad scan.
func defaultConnectors() []string {
	return []string{"de", "del", "della", "der", "la", "le", "van", "von", "da", "di", "mac", "st"}
}

// defaultTitles maps the honorifics seen in hearing transcripts to the
// speaker role each implies.
func defaultTitles() []TitleConfig {
	return []TitleConfig{
		{Token: "Senator", Role: "legislator"},
		{Token: "Sen", Role: "legislator"},
		{Token: "Representative", Role: "legislator"},
		{Token: "Rep", Role: "legislator"},
		{Token: "Assemblymember", Role: "legislator"},
		{Token: "Delegate", Role: "legislator"},
		{Token: "Chairman", Role: "official"},
		{Token: "Chairwoman", Role: "official"},
		{Token: "Chair", Role: "official"},
		{Token: "Vice-Chair", Role: "official"},
		{Token: "Secretary", Role: "official"},
		{Token: "Director", Role: "official"},
		{Token: "Commissioner", Role: "official"},
		{Token: "Superintendent", Role: "official"},
		{Token: "Governor", Role: "official"},
		{Token: "Lieutenant Governor", Role: "official"},
		{Token: "Speaker", Role: "official"},
		{Token: "Dr", Role: "expert"},
		{Token: "Doctor", Role: "expert"},
		{Token: "Professor", Role: "expert"},
		{Token: "Mr", Role: "unknown"},
		{Token: "Mrs", Role: "unknown"},
		{Token: "Ms", Role: "unknown"},
		{Token: "Madam", Role: "unknown"},
	}
}

// defaultStopPhrases is the whole-phrase stoplist: capitalized spans the
// broad scan reliably mistakes for names. Grouped by why they show up.
func defaultStopPhrases() []string {
	return []string{
		// Sentence-initial common words.
		"The", "This", "That", "These", "Those", "There", "Then", "They",
		"And", "But", "So", "Now", "Well", "Yes", "No", "Okay", "Thank",
		"Thanks", "Please", "Good", "Great", "Right", "All", "Any", "Some",
		"What", "When", "Where", "Which", "Who", "Why", "How", "If", "It",
		"We", "You", "I", "He", "She", "Our", "Your", "My", "His", "Her",
		"Is", "Are", "Was", "Were", "Do", "Does", "Did", "Can", "Could",
		"Will", "Would", "Should", "May", "Might", "Let", "Also", "Again",
		"Here", "Just", "Very", "Really", "Only", "Even", "Still",

		// Procedural and institutional terms.
		"Mr Chairman", "Madam Chair", "Mr Speaker", "Madam Speaker",
		"Committee", "Subcommittee", "Senate", "House", "Congress",
		"Legislature", "Session", "Amendment", "Motion", "Bill", "Act",
		"Article", "Section", "Chapter", "Title", "Page", "Line",
		"Roll Call", "Quorum", "Recess", "Adjourn", "Adjourned",
		"Second", "Seconded", "Aye", "Nay", "Present", "Absent",
		"Fiscal", "Budget", "Appropriation", "Committee Substitute",
		"House Bill", "Senate Bill", "House Joint Resolution",
		"Senate Joint Resolution", "Floor", "Chamber", "Caucus",
		"Majority", "Minority", "Whip", "Clerk", "Sergeant",
		"State", "Federal", "Government", "Department", "Agency",
		"Division", "Office", "Board", "Council", "Commission",
		"District", "County", "City", "Municipality",

		// Weekdays and months.
		"Monday", "Tuesday", "Wednesday", "Thursday", "Friday",
		"Saturday", "Sunday",
		"January", "February", "March", "April", "June", "July",
		"August", "September", "October", "November", "December",

		// Transcript artifacts.
		"Inaudible", "Crosstalk", "Applause", "Laughter", "Pause",
		"Recording", "Transcript", "Audio", "Video", "Microphone",
		"Zoom", "Webex", "Mute", "Unmute",
	}
}

// defaultBoundaryStopWords lists words a plausible name never begins or ends
// with. Used for both boundaries.
func defaultBoundaryStopWords() []string {
	return []string{
		"and", "or", "the", "a", "an", "of", "for", "to", "in", "on",
		"at", "by", "with", "from", "about", "as", "but", "is", "was",
		"are", "were", "has", "have", "had", "will", "would", "said",
		"asked", "says", "members", "member", "committee", "thank",
		"thanks", "yes", "no", "okay", "question", "questions",
	}
}

// defaultEmbeddedTitleWords lists title tokens that never occur inside a
// single person's name. A span containing one is two mangled mentions.
func defaultEmbeddedTitleWords() []string {
	return []string{
		"senator", "representative", "chairman", "chairwoman", "chair",
		"secretary", "director", "commissioner", "governor", "speaker",
		"doctor", "professor", "madam",
	}
}

// defaultStripTitles lists honorifics removed from the front of raw
// candidates during normalization.
func defaultStripTitles() []string {
	return []string{
		"senator", "sen", "representative", "rep", "assemblymember",
		"delegate", "chairman", "chairwoman", "chair", "vice-chair",
		"secretary", "director", "commissioner", "superintendent",
		"governor", "speaker", "dr", "doctor", "professor",
		"mr", "mrs", "ms", "madam",
	}
}
