package config

// Option keys read by the collectors.
const (
	OptionFile     = "file"
	OptionEndpoint = "endpoint"
	OptionBaseURL  = "baseUrl"
	OptionLookback = "lookbackDays"
	OptionLimit    = "limit"
	OptionKeywords = "keywords"
	OptionLabel    = "label"
)

var searchKeywords = []string{
	"neck pain", "stiff neck", "upper back pain", "lower back pain", "sciatica", "herniated disc",
	"hip pain", "anterior pelvic tilt", "hip flexor pain", "shoulder pain", "knee pain",
	"plantar fasciitis", "carpal tunnel",
	"tension headache", "forward head posture", "working from home", "office ergonomics",
	"standing desk", "text neck",
	"driving back pain", "work injury", "squat form", "deadlift form", "aging posture",
	"fibromyalgia", "chronic pain syndrome", "degenerative disc disease", "piriformis syndrome",
	"thoracic outlet syndrome", "cancer pain",
	"corrective exercise", "posture correction", "foam rolling", "mobility exercises",
	"yoga for back pain", "yoga for sciatica", "therapeutic yoga", "yoga for chronic pain",
	"restorative yoga", "yin yoga for pain",
	"runner's knee", "IT band syndrome", "achilles tendonitis", "plantar fasciitis running",
	"hip flexor running", "marathon recovery",
	"longevity exercises", "mobility for aging", "functional fitness over 40", "joint health",
	"movement longevity",
	"exercise during chemotherapy", "cancer rehabilitation", "exercise after cancer treatment",
	"cancer fatigue exercise", "oncology exercise",
}

var referenceArticles = []string{
	"Chronic_pain", "Sciatica", "Fibromyalgia", "Low_back_pain",
	"Physical_therapy", "Ergonomics", "Kyphosis",
	"Piriformis_syndrome", "Thoracic_outlet_syndrome",
	"Plantar_fasciitis", "Rotator_cuff_tear",
	"Sacroiliac_joint_dysfunction", "Spinal_stenosis",
	"Scoliosis", "Spinal_disc_herniation",
	"Tension_headache", "Myofascial_pain_syndrome",
	"Carpal_tunnel_syndrome", "Lordosis",
	"Anterior_pelvic_tilt", "Posture",
	"Yoga_therapy", "Yoga_as_exercise",
	"Iliotibial_band_syndrome", "Achilles_tendinitis", "Patellofemoral_pain_syndrome",
	"Cancer-related_fatigue", "Exercise_and_cancer",
	"Blue_zone", "Longevity",
}

var communities = []string{
	"ChronicPain", "backpain", "Sciatica", "Fibromyalgia", "PelvicFloor", "TMJ",
	"flexibility", "posture", "bodyweightfitness", "PhysicalTherapy",
	"Fitness", "CrossFit", "powerlifting", "weightroom",
	"Ergonomics", "cycling", "golf",
	"yoga", "yogatherapy", "ashtanga",
	"running", "AdvancedRunning", "Marathon", "ultrarunning",
	"longevity", "Biohackers", "QuantifiedSelf",
	"cancer", "CancerFighters", "breastcancer",
}

var questionQueries = []string{
	"best exercises for chronic back pain",
	"how to prevent lower back pain from sitting",
	"sciatica pain relief exercises",
	"posture correction for desk workers",
	"piriformis syndrome vs sciatica difference",
	"how to fix forward head posture permanently",
	"best exercises for thoracic outlet syndrome",
	"why does my hip hurt after sitting all day",
	"how long does it take to fix anterior pelvic tilt",
	"is a standing desk better than sitting for back pain",
	"best foam roller exercises for back pain relief",
	"how to prevent back pain as a nurse",
	"chiropractor vs physical therapist for sciatica",
	"tension headache from bad posture treatment",
	"corrective exercise specialist vs physical therapist",
	"yoga for sciatica pain relief",
	"best yoga poses for lower back pain",
	"is yoga good for herniated disc",
	"how to fix IT band syndrome from running",
	"best exercises for runner's knee",
	"marathon recovery exercises",
	"safe exercises during chemotherapy",
	"exercise after cancer treatment fatigue",
	"best exercises for longevity over 40",
	"mobility exercises for aging joints",
}

var techQueries = []string{
	"standing desk", "office chair", "back pain", "RSI", "posture", "carpal tunnel", "ergonomics",
}

// defaultSources returns the built-in source list used when the config
// file does not declare any.
func defaultSources() []SourceConfig {
	return []SourceConfig{
		{
			Name:      "search-metrics",
			Collector: CollectorSearchMetrics,
			Targets:   clone(searchKeywords),
			Options:   map[string]string{OptionFile: "data/search_metrics.json"},
		},
		{
			Name:      "wikipedia",
			Collector: CollectorWikipedia,
			Targets:   clone(referenceArticles),
			Options:   map[string]string{OptionBaseURL: "https://wikimedia.org/api/rest_v1/metrics/pageviews/per-article/en.wikipedia/all-access/all-agents"},
		},
		{
			Name:      "reddit",
			Collector: CollectorReddit,
			Targets:   clone(communities),
			Options:   map[string]string{OptionBaseURL: "https://www.reddit.com", OptionLimit: "10"},
		},
		{
			Name:      "questions",
			Collector: CollectorQuestions,
			Targets:   clone(questionQueries),
			Options:   map[string]string{OptionBaseURL: "https://www.google.com/search", OptionLimit: "3"},
		},
		{
			Name:      "hackernews",
			Collector: CollectorHackerNews,
			Targets:   clone(techQueries),
			Options:   map[string]string{OptionBaseURL: "https://hn.algolia.com/api/v1", OptionLookback: "7", OptionLimit: "10"},
		},
		{
			Name:      "pubmed",
			Collector: CollectorPubMed,
			Targets:   []string{researchQuery},
			Options:   map[string]string{OptionBaseURL: "https://eutils.ncbi.nlm.nih.gov/entrez/eutils", OptionLimit: "5"},
		},
		{
			Name:      "news",
			Collector: CollectorNews,
			Targets:   clone(newsQueries),
			Options:   map[string]string{OptionBaseURL: "https://news.google.com/rss/search", OptionLimit: "10"},
		},
		{
			Name:      "local-leads",
			Collector: CollectorLeads,
			Targets:   clone(localCommunities),
			Options: map[string]string{
				OptionBaseURL:  "https://www.reddit.com",
				OptionKeywords: painKeywords,
				OptionLabel:    "BAY AREA LOCAL LEAD",
				OptionLimit:    "2",
			},
		},
		{
			Name:      "exec-leads",
			Collector: CollectorLeads,
			Targets:   clone(execCommunities),
			Options: map[string]string{
				OptionBaseURL:  "https://www.reddit.com",
				OptionKeywords: lifestyleKeywords,
				OptionLabel:    "EXEC LIFESTYLE LEAD",
				OptionLimit:    "2",
			},
		},
	}
}

const researchQuery = `("chronic pain"[Title/Abstract] OR "cancer pain"[Title/Abstract] OR "sciatica"[Title/Abstract] OR "low back pain"[Title/Abstract] OR "neck pain"[Title/Abstract]) AND ("exercise"[Title/Abstract] OR "rehabilitation"[Title/Abstract] OR "physical therapy"[Title/Abstract] OR "ergonomics"[Title/Abstract])`

// The first news query fills the feed; the rest top it up with a few
// headlines each.
var newsQueries = []string{
	`("back pain" OR "neck pain" OR "sciatica" OR "cancer pain" OR "chronic pain") AND ("treatment" OR "exercise" OR "study" OR "ergonomics" OR "posture" OR "prevention") when:7d`,
	`"yoga therapy" OR "yoga for pain" OR "therapeutic yoga" when:7d`,
	`"longevity" OR "functional fitness" OR "mobility training" when:7d`,
	`"cancer exercise" OR "exercise oncology" when:7d`,
	`"running injury" OR "marathon recovery" OR "runner's knee" when:7d`,
}

var (
	localCommunities  = []string{"bayarea", "sanfrancisco", "SanJose"}
	execCommunities   = []string{"fatFIRE", "startups", "experienceddevs", "consulting"}
	painKeywords      = "back pain,neck pain,chronic pain"
	lifestyleKeywords = "standing desk,posture,ergonomic setup"
)

func clone(in []string) []string {
	return append([]string(nil), in...)
}
