package analysis

import (
	"fmt"
	"strings"
)

// OtherGroupKey collects keywords that belong to no registered group.
const (
	OtherGroupKey   = "other"
	OtherGroupLabel = "Other / Ungrouped"
)

// TopicGroup is an anatomical or modality group of keywords.
type TopicGroup struct {
	Key          string
	Label        string
	Keywords     []string
	WikiArticles []string
	ExerciseKeys []string
}

// Registry indexes topic groups by key and by member keyword. It is
// read-only once built and safe for concurrent use.
type Registry struct {
	groups    []TopicGroup
	byKey     map[string]int
	byKeyword map[string]string
}

// NewRegistry builds a registry from groups in declaration order. A keyword
// registered in two groups, or a repeated group key, is an error.
func NewRegistry(groups []TopicGroup) (*Registry, error) {
	reg := &Registry{
		groups:    make([]TopicGroup, 0, len(groups)),
		byKey:     make(map[string]int, len(groups)),
		byKeyword: map[string]string{},
	}

	for _, group := range groups {
		if group.Key == "" {
			return nil, fmt.Errorf("topic group %q has empty key", group.Label)
		}
		if _, exists := reg.byKey[group.Key]; exists {
			return nil, fmt.Errorf("topic group %s is registered twice", group.Key)
		}
		for _, kw := range group.Keywords {
			normalized := strings.ToLower(kw)
			if owner, taken := reg.byKeyword[normalized]; taken {
				return nil, fmt.Errorf("keyword %q belongs to both %s and %s", kw, owner, group.Key)
			}
			reg.byKeyword[normalized] = group.Key
		}
		reg.byKey[group.Key] = len(reg.groups)
		reg.groups = append(reg.groups, group)
	}

	return reg, nil
}

// Groups returns the registered groups in declaration order.
func (r *Registry) Groups() []TopicGroup {
	out := make([]TopicGroup, len(r.groups))
	copy(out, r.groups)
	return out
}

// Group looks up a group by key.
func (r *Registry) Group(key string) (TopicGroup, bool) {
	idx, ok := r.byKey[key]
	if !ok {
		return TopicGroup{}, false
	}
	return r.groups[idx], true
}

// GroupFor returns the group key of a keyword, case-insensitively.
func (r *Registry) GroupFor(keyword string) (string, bool) {
	key, ok := r.byKeyword[strings.ToLower(keyword)]
	return key, ok
}

// Label returns the display label of a group key.
func (r *Registry) Label(key string) string {
	if group, ok := r.Group(key); ok {
		return group.Label
	}
	return OtherGroupLabel
}

var defaultRegistry = mustRegistry(defaultTopicGroups)

// DefaultRegistry returns the process-wide topic registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func mustRegistry(groups []TopicGroup) *Registry {
	reg, err := NewRegistry(groups)
	if err != nil {
		panic(err)
	}
	return reg
}

var defaultTopicGroups = []TopicGroup{
	{
		Key:          "neck",
		Label:        "Neck & Cervical Spine",
		Keywords:     []string{"neck pain", "stiff neck", "text neck", "forward head posture"},
		WikiArticles: []string{"Tension_headache"},
		ExerciseKeys: []string{"neck pain", "text neck", "forward head posture"},
	},
	{
		Key:          "upper_back",
		Label:        "Upper Back & Thoracic",
		Keywords:     []string{"upper back pain", "thoracic outlet syndrome"},
		WikiArticles: []string{"Kyphosis", "Thoracic_outlet_syndrome"},
		ExerciseKeys: []string{"upper back pain", "thoracic outlet", "thoracic outlet syndrome"},
	},
	{
		Key:   "lower_back",
		Label: "Lower Back & Lumbar Spine",
		Keywords: []string{
			"lower back pain", "sciatica", "herniated disc",
			"yoga for back pain", "yoga for sciatica", "driving back pain",
		},
		WikiArticles: []string{
			"Low_back_pain", "Sciatica", "Spinal_disc_herniation",
			"Spinal_stenosis", "Scoliosis",
		},
		ExerciseKeys: []string{
			"lower back pain", "sciatica", "back pain",
			"yoga for back pain", "yoga for sciatica",
		},
	},
	{
		Key:   "hip_pelvis",
		Label: "Hip & Pelvis",
		Keywords: []string{
			"hip pain", "anterior pelvic tilt", "hip flexor pain",
			"hip flexor running", "piriformis syndrome",
		},
		WikiArticles: []string{
			"Piriformis_syndrome", "Sacroiliac_joint_dysfunction", "Anterior_pelvic_tilt",
		},
		ExerciseKeys: []string{
			"hip pain", "anterior pelvic tilt", "piriformis",
			"piriformis syndrome", "hip flexor running",
		},
	},
	{
		Key:          "shoulder",
		Label:        "Shoulder",
		Keywords:     []string{"shoulder pain"},
		WikiArticles: []string{"Rotator_cuff_tear"},
		ExerciseKeys: []string{"shoulder pain"},
	},
	{
		Key:          "knee",
		Label:        "Knee",
		Keywords:     []string{"knee pain", "runner's knee"},
		WikiArticles: []string{"Patellofemoral_pain_syndrome"},
		ExerciseKeys: []string{"knee pain", "runner's knee"},
	},
	{
		Key:          "foot_ankle",
		Label:        "Foot & Ankle",
		Keywords:     []string{"plantar fasciitis", "plantar fasciitis running", "achilles tendonitis"},
		WikiArticles: []string{"Plantar_fasciitis", "Achilles_tendinitis"},
		ExerciseKeys: []string{"plantar fasciitis", "plantar fasciitis running", "achilles tendonitis"},
	},
	{
		Key:          "hand_wrist",
		Label:        "Hand & Wrist",
		Keywords:     []string{"carpal tunnel"},
		WikiArticles: []string{"Carpal_tunnel_syndrome"},
		ExerciseKeys: []string{"carpal tunnel"},
	},
	{
		Key:          "head_jaw",
		Label:        "Head & Jaw",
		Keywords:     []string{"tension headache"},
		WikiArticles: []string{"Tension_headache", "Myofascial_pain_syndrome"},
		ExerciseKeys: []string{"tension headache"},
	},
	{
		Key:   "posture_ergonomics",
		Label: "Posture & Ergonomics",
		Keywords: []string{
			"posture", "posture correction", "office ergonomics",
			"standing desk", "working from home", "squat form",
			"deadlift form", "aging posture",
		},
		WikiArticles: []string{"Posture", "Ergonomics", "Lordosis"},
		ExerciseKeys: []string{"posture", "office ergonomics", "standing desk"},
	},
	{
		Key:   "yoga_therapy",
		Label: "Yoga Therapy",
		Keywords: []string{
			"therapeutic yoga", "yoga for chronic pain",
			"restorative yoga", "yin yoga for pain",
		},
		WikiArticles: []string{"Yoga_therapy", "Yoga_as_exercise"},
		ExerciseKeys: []string{"therapeutic yoga", "yoga for chronic pain", "restorative yoga"},
	},
	{
		Key:          "running_recovery",
		Label:        "Running Recovery",
		Keywords:     []string{"IT band syndrome", "marathon recovery"},
		WikiArticles: []string{"Iliotibial_band_syndrome"},
		ExerciseKeys: []string{"IT band syndrome", "marathon recovery"},
	},
	{
		Key:   "longevity",
		Label: "Longevity & Functional Aging",
		Keywords: []string{
			"longevity exercises", "mobility for aging",
			"functional fitness over 40", "joint health", "movement longevity",
		},
		WikiArticles: []string{"Blue_zone", "Longevity"},
		ExerciseKeys: []string{
			"longevity exercises", "mobility for aging",
			"functional fitness over 40", "joint health", "movement longevity",
		},
	},
	{
		Key:   "cancer_exercise",
		Label: "Cancer Exercise",
		Keywords: []string{
			"exercise during chemotherapy", "cancer rehabilitation",
			"exercise after cancer treatment", "cancer fatigue exercise",
			"oncology exercise", "cancer pain",
		},
		WikiArticles: []string{"Cancer-related_fatigue", "Exercise_and_cancer"},
		ExerciseKeys: []string{
			"exercise during chemotherapy", "cancer rehabilitation",
			"exercise after cancer treatment", "cancer fatigue exercise",
			"oncology exercise", "cancer pain",
		},
	},
	{
		Key:          "chronic_conditions",
		Label:        "Chronic Conditions",
		Keywords:     []string{"fibromyalgia", "chronic pain syndrome", "degenerative disc disease"},
		WikiArticles: []string{"Chronic_pain", "Fibromyalgia"},
		ExerciseKeys: []string{"fibromyalgia"},
	},
	{
		Key:          "general_modalities",
		Label:        "General Exercise Modalities",
		Keywords:     []string{"corrective exercise", "foam rolling", "mobility exercises", "work injury"},
		WikiArticles: []string{"Physical_therapy"},
		ExerciseKeys: []string{"corrective exercise", "foam rolling", "mobility exercises"},
	},
}
