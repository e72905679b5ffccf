package analysis

import (
	"strings"

	"TrendEngine/internal/domain"
)

// DefaultAssessmentKey marks a suggestion that fell back to the default test.
const DefaultAssessmentKey = "default"

const (
	assessmentThreshold = 0.4
	partialTokenCredit  = 0.75
)

// Assessment is a self-test viewers can run at home.
type Assessment struct {
	Key            string
	Name           string
	Instructions   string
	Interpretation string
	CallToAction   string
}

// SuggestAssessment maps a theme to a self-test. A registry key contained
// in the theme wins at once, the first in declaration order. Otherwise the
// key with the best token overlap is used when it scores at least 0.4, and
// the overhead squat default when nothing does.
func SuggestAssessment(theme string) domain.AssessmentSuggestion {
	entry := defaultAssessment
	if match, ok := matchAssessment(theme, assessments); ok {
		entry = match
	}
	return domain.AssessmentSuggestion{
		AssessmentName: entry.Name,
		Instructions:   entry.Instructions,
		Interpretation: entry.Interpretation,
		CallToAction:   entry.CallToAction,
		MatchedKey:     entry.Key,
		InputTheme:     theme,
	}
}

func matchAssessment(theme string, registry []Assessment) (Assessment, bool) {
	normalized := normalize(theme)
	queryTokens := newWordSet(strings.Fields(normalized)...)
	if len(queryTokens) == 0 {
		return Assessment{}, false
	}

	var best Assessment
	bestScore := 0.0
	for _, entry := range registry {
		key := normalize(entry.Key)
		if strings.Contains(normalized, key) {
			return entry, true
		}
		if score := tokenOverlap(queryTokens, newWordSet(strings.Fields(key)...)); score > bestScore {
			bestScore = score
			best = entry
		}
	}

	if bestScore >= assessmentThreshold {
		return best, true
	}
	return Assessment{}, false
}

// tokenOverlap is the share of key tokens present in the query, with
// partial credit when a token contains or is contained by a query token.
func tokenOverlap(query, key wordSet) float64 {
	if len(key) == 0 {
		return 0
	}
	matched := 0.0
	for kt := range key {
		if query.has(kt) {
			matched++
			continue
		}
		for qt := range query {
			if strings.Contains(qt, kt) || strings.Contains(kt, qt) {
				matched += partialTokenCredit
				break
			}
		}
	}
	return matched / float64(len(key))
}

var defaultAssessment = Assessment{
	Key:  DefaultAssessmentKey,
	Name: "Overhead Squat Assessment",
	Instructions: "Stand with feet shoulder-width apart. Raise both arms straight " +
		"overhead, biceps by your ears. Slowly squat down as far as " +
		"comfortable. Note where you feel limited: ankles, hips, upper " +
		"back, or shoulders.",
	Interpretation: "The overhead squat reveals your body's priority compensation " +
		"pattern. Heels rising = ankle mobility. Knees caving = hip " +
		"weakness. Arms falling forward = thoracic stiffness. The first " +
		"thing that breaks down is your starting point.",
	CallToAction: "Whatever broke down first in your overhead squat, the exercises " +
		"in today's video are designed to address that exact limitation.",
}

var assessments = []Assessment{
	{
		Key:  "sciatica",
		Name: "Straight Leg Raise Test",
		Instructions: "Lie flat on your back on a firm surface. Keep both legs " +
			"straight. Slowly lift one leg upward, keeping the knee " +
			"locked. Note the angle at which you feel pain, tingling, " +
			"or tightness down the back of your leg. Repeat on the " +
			"other side.",
		Interpretation: "Pain or tingling before reaching 60 degrees suggests " +
			"sciatic nerve involvement: the nerve is being tensioned " +
			"by a disc bulge or piriformis tightness.",
		CallToAction: "If you feel symptoms before 60 degrees, the nerve " +
			"flossing and decompression exercises in today's video " +
			"are exactly what you need to start relieving that tension.",
	},
	{
		Key:  "lower back pain",
		Name: "Wall Test for Lordosis",
		Instructions: "Stand with your heels, buttocks, shoulders, and the back " +
			"of your head all touching a wall. Now try to slide your " +
			"hand between your lower back and the wall. Note how much " +
			"space there is.",
		Interpretation: "If your entire hand (or more) fits easily behind your " +
			"lower back, you likely have excess lumbar lordosis, an " +
			"exaggerated curve that compresses discs and facet joints.",
		CallToAction: "If your hand slides through easily, the core bracing " +
			"and pelvic tilt drills in today's video will help you " +
			"restore a neutral spine position.",
	},
	{
		Key:  "posture",
		Name: "Wall Posture Check",
		Instructions: "Stand with your back against a wall. Try to touch your " +
			"heels, buttocks, shoulder blades, AND the back of your " +
			"head to the wall simultaneously. Hold for 10 seconds and " +
			"note what feels difficult or impossible.",
		Interpretation: "Most desk workers cannot get all four contact points at " +
			"once. If your head won't reach, your thoracic spine is " +
			"likely in kyphosis. If your lower back arches away, your " +
			"hip flexors may be tight.",
		CallToAction: "If you can't hit all four points, the posture correction " +
			"sequence in today's video targets exactly the areas that " +
			"are pulling you out of alignment.",
	},
	{
		Key:  "hip pain",
		Name: "Single-Leg Balance Test",
		Instructions: "Stand on one leg with your arms relaxed at your sides. " +
			"Close your eyes and try to hold the position for 30 " +
			"seconds. Time yourself on each side and note any wobbling " +
			"or inability to maintain balance.",
		Interpretation: "Lasting under 15 seconds suggests hip stabilizer weakness, " +
			"specifically the gluteus medius and deep rotators. A " +
			"large side-to-side difference reveals asymmetry that may " +
			"be driving your hip pain.",
		CallToAction: "If you can't hold 30 seconds with eyes closed, the hip " +
			"stabilizer exercises in today's video will build exactly " +
			"the control you're missing.",
	},
	{
		Key:  "neck pain",
		Name: "Chin Tuck Test",
		Instructions: "Sit or stand tall. Without tilting your head up or down, " +
			"gently draw your chin straight back, as if making a " +
			"'double chin.' Hold for 5 seconds and note whether you " +
			"feel pain, a blocking sensation, or difficulty performing " +
			"the movement.",
		Interpretation: "If the chin tuck hurts or feels blocked, your deep neck " +
			"flexors are likely inhibited, a hallmark of forward-head " +
			"posture. These muscles are the 'core' of your neck.",
		CallToAction: "If the chin tuck felt painful or stuck, the deep neck " +
			"flexor activation drills in today's video are your " +
			"starting point for lasting neck pain relief.",
	},
	{
		Key:  "shoulder pain",
		Name: "Apley Scratch Test",
		Instructions: "Reach one hand over the top of your shoulder and down " +
			"your back. Simultaneously reach the other hand behind " +
			"your back and up. Try to touch your fingertips together. " +
			"Measure the gap (or overlap) and then switch sides to " +
			"compare.",
		Interpretation: "A gap larger than two inches, or a significant " +
			"difference between sides, indicates restricted shoulder " +
			"rotation. The tight side often points to the rotator cuff " +
			"or lat that's driving the pain.",
		CallToAction: "If your hands can't meet, or one side is noticeably " +
			"tighter, the shoulder mobility drills in today's video " +
			"address those exact restrictions.",
	},
	{
		Key:  "knee pain",
		Name: "Single-Leg Squat Test",
		Instructions: "Stand on one leg near a wall or chair for safety. Slowly " +
			"perform a shallow squat on that single leg, going down " +
			"about 4-6 inches. Watch your knee in a mirror or have " +
			"someone observe: does it cave inward, drift outward, or " +
			"track straight over your toes?",
		Interpretation: "If your knee collapses inward (valgus), it signals " +
			"weakness in the VMO (inner quad) and gluteus medius. This " +
			"medial collapse is one of the most common drivers of " +
			"runner's knee, IT band syndrome, and patellofemoral pain.",
		CallToAction: "If your knee caved inward, the VMO and glute activation " +
			"exercises in today's video target the exact muscles that " +
			"need to fire to protect your knee.",
	},
	{
		Key:  "cancer fatigue exercise",
		Name: "Talk Test for Exercise Intensity",
		Instructions: "Go for a walk at your current comfortable pace. While " +
			"walking, try to carry on a conversation and then try to " +
			"sing a line from a song. Note whether you can talk " +
			"comfortably, talk but not sing, or struggle to talk.",
		Interpretation: "If you can talk but not sing, you're in Zone 2, the " +
			"ideal aerobic recovery intensity. This is the sweet spot " +
			"for building endurance without triggering excessive " +
			"fatigue, which is especially important for managing " +
			"cancer-related fatigue.",
		CallToAction: "If you found your 'talk but can't sing' pace, the " +
			"gentle movement progressions in today's video are " +
			"designed to keep you right in that recovery zone.",
	},
	{
		Key:  "runner's knee",
		Name: "Step-Down Test",
		Instructions: "Stand on a step or sturdy platform (6-8 inches high) on " +
			"one leg. Slowly lower the opposite heel toward the floor " +
			"by bending the standing knee. Watch your standing knee " +
			"carefully: does it cave inward, shake, or do you feel " +
			"pain under the kneecap?",
		Interpretation: "Knee caving inward during the step-down reveals the same " +
			"VMO/glute medius weakness pattern that drives runner's " +
			"knee. Pain under the kneecap during this movement " +
			"confirms patellofemoral involvement.",
		CallToAction: "If your knee caved inward or you felt kneecap pain, the " +
			"targeted strengthening exercises in today's video were " +
			"designed for exactly this pattern.",
	},
	{
		Key:  "yoga",
		Name: "Forward Fold Baseline Assessment",
		Instructions: "Stand with feet hip-width apart, knees straight but not " +
			"locked. Slowly fold forward from the hips, reaching your " +
			"hands toward the floor. Note where your fingertips reach: " +
			"mid-shin, ankles, floor, or past your toes. Do not bounce " +
			"or force the stretch.",
		Interpretation: "Your forward fold reach is a reliable baseline for " +
			"posterior chain flexibility: hamstrings, glutes, and " +
			"spinal extensors. Retesting after 4-6 weeks shows real " +
			"progress that's hard to see day-to-day.",
		CallToAction: "Note where your hands reach today. Follow the flexibility " +
			"sequence in today's video for four weeks and retest; " +
			"you'll have objective proof of your progress.",
	},
}
