package analysis

// ExercisesForGroup collects the exercises of every exercise key of a group,
// deduplicated in first-seen order. Unknown groups yield nil.
func ExercisesForGroup(reg *Registry, groupKey string, solutions map[string][]string) []string {
	group, ok := reg.Group(groupKey)
	if !ok {
		return nil
	}

	seen := map[string]struct{}{}
	var exercises []string
	for _, key := range group.ExerciseKeys {
		for _, name := range solutions[key] {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			exercises = append(exercises, name)
		}
	}
	return exercises
}

// ExercisesForTheme resolves a theme keyword to exercises: a direct solution
// entry first, then the exercises of the theme's group.
func ExercisesForTheme(reg *Registry, theme string, solutions map[string][]string) []string {
	if direct, ok := solutions[normalize(theme)]; ok {
		return append([]string(nil), direct...)
	}
	for _, key := range sortedKeys(solutions) {
		if normalize(key) == normalize(theme) {
			return append([]string(nil), solutions[key]...)
		}
	}
	if groupKey, ok := reg.GroupFor(theme); ok {
		return ExercisesForGroup(reg, groupKey, solutions)
	}
	return nil
}

// TopicSolutions maps a topic keyword to the exercises that address it.
var TopicSolutions = map[string][]string{
	"sciatica":                 {"Piriformis stretch", "Nerve flossing", "Figure-4 stretch"},
	"back pain":                {"Cat-cow", "Bird dog", "McGill big 3"},
	"lower back pain":          {"Cat-cow", "Bird dog", "McGill big 3", "Glute bridges"},
	"neck pain":                {"Chin tucks", "Scalene stretch", "Thoracic extension"},
	"posture":                  {"Wall angels", "Band pull-aparts", "Doorway stretch"},
	"sitting":                  {"Hip flexor stretch", "Glute bridges", "Walking breaks"},
	"cancer pain":              {"Gentle mobility", "Breathwork", "Mindful movement"},
	"hip pain":                 {"Clamshells", "Hip flexor stretch", "90/90 stretch", "Pigeon pose"},
	"shoulder pain":            {"Band pull-aparts", "External rotation", "Face pulls", "Sleeper stretch"},
	"upper back pain":          {"Thoracic extension", "Foam roller thoracic", "Prone Y raise"},
	"knee pain":                {"Terminal knee extension", "Step-downs", "Quad foam roll"},
	"tension headache":         {"Chin tucks", "Suboccipital release", "Upper trap stretch"},
	"plantar fasciitis":        {"Calf stretch", "Toe curls", "Frozen bottle roll"},
	"piriformis":               {"Piriformis stretch", "Figure-4 stretch", "Pigeon pose", "Glute foam roll"},
	"piriformis syndrome":      {"Piriformis stretch", "Figure-4 stretch", "Pigeon pose", "Glute foam roll"},
	"thoracic outlet":          {"Scalene stretch", "Pec minor stretch", "Nerve glides"},
	"thoracic outlet syndrome": {"Scalene stretch", "Pec minor stretch", "Nerve glides"},
	"forward head posture":     {"Chin tucks", "Wall angels", "Cervical retraction"},
	"anterior pelvic tilt":     {"Hip flexor stretch", "Glute bridges", "Dead bugs", "Posterior pelvic tilt drill"},
	"carpal tunnel":            {"Wrist flexor stretch", "Nerve glides", "Tendon gliding"},
	"fibromyalgia":             {"Gentle walking", "Aquatic exercise", "Tai chi", "Yoga"},
	"text neck":                {"Chin tucks", "Thoracic extension", "Scalene stretch"},
	"standing desk":            {"Calf raises", "Weight shifting", "Standing hip flexor stretch"},
	"office ergonomics":        {"Desk stretches", "Eye-level monitor", "90-90 sitting posture"},
	"foam rolling":             {"Thoracic roller", "IT band", "Glute roll", "Lat roll"},
	"mobility exercises":       {"World's greatest stretch", "90/90", "Cat-cow", "Thread the needle"},
	"yoga for back pain":       {"Cat-cow (Marjaryasana)", "Child's pose (Balasana)", "Sphinx pose", "Supine twist"},
	"yoga for sciatica":        {"Reclined pigeon", "Supine twist", "Figure-4 stretch", "Thread the needle"},
	"therapeutic yoga":         {"Supported bridge", "Legs-up-the-wall", "Constructive rest", "Supine spinal twist"},
	"yoga for chronic pain":    {"Gentle cat-cow", "Supported child's pose", "Savasana with props", "Diaphragmatic breathing"},
	"restorative yoga":         {"Supported bridge", "Legs-up-the-wall", "Supported fish", "Side-lying savasana"},
	"runner's knee":            {"Terminal knee extension", "VMO activation", "Single-leg step-down", "Foam roll quads/IT band"},
	"IT band syndrome":         {"Side-lying clamshells", "Lateral band walks", "Foam roll IT band", "Single-leg deadlift"},
	"achilles tendonitis":      {"Eccentric heel drops", "Calf raises (bent knee)", "Ankle alphabet", "Soleus stretch"},
	"plantar fasciitis running": {
		"Calf stretch (wall)", "Toe curls with towel", "Frozen bottle roll", "Arch doming",
	},
	"marathon recovery":  {"Foam roll full body", "Gentle walking", "Legs-up-the-wall", "Epsom salt bath"},
	"hip flexor running": {"Half-kneeling hip flexor stretch", "Couch stretch", "Psoas march", "Glute bridges"},
	"exercise during chemotherapy": {
		"Gentle walking (10-15 min)", "Seated arm raises", "Chair-supported squats", "Diaphragmatic breathing",
	},
	"cancer rehabilitation": {"Progressive walking program", "Light resistance bands", "Balance exercises", "Gentle yoga"},
	"exercise after cancer treatment": {
		"Graduated walking", "Bodyweight squats", "Wall push-ups", "Gentle stretching",
	},
	"cancer fatigue exercise": {"5-minute walk intervals", "Seated exercises", "Gentle range of motion", "Restorative breathing"},
	"oncology exercise":       {"Supervised progressive resistance", "Aerobic intervals", "Flexibility work", "Balance training"},
	"longevity exercises":     {"Zone 2 walking", "Goblet squats", "Farmer carries", "Turkish get-up"},
	"mobility for aging":      {"World's greatest stretch", "Hip CARs", "Thoracic rotation", "Ankle mobility"},
	"functional fitness over 40": {
		"Deadlift pattern", "Push-pull balance", "Single-leg work", "Loaded carries",
	},
	"joint health":       {"CARs (controlled articular rotations)", "Band pull-aparts", "Hip CARs", "Shoulder CARs"},
	"movement longevity": {"Ground-to-standing transitions", "Balance work", "Grip strength", "Mobility flows"},
}
