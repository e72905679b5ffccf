package strategy

import "TrendEngine/internal/domain"

// Protocols holds clinical exercise detail (sets, progression, regression,
// contraindication) for the most common themes, keyed by lowercase theme.
var Protocols = map[string][]domain.PlaybookExercise{
	"sciatica": {
		{Name: "Piriformis stretch", Sets: "3x30s each side", Progression: "Add hip internal rotation", Regression: "Supine figure-4 with strap", Contraindication: "Acute disc herniation with progressive neurological deficit"},
		{Name: "Nerve flossing (sciatic)", Sets: "2x10 reps", Progression: "Add ankle dorsiflexion", Regression: "Seated slump only", Contraindication: "Acute radiculopathy with severe pain"},
		{Name: "Figure-4 stretch", Sets: "3x30s each side", Progression: "Standing figure-4", Regression: "Supine with pillow under head", Contraindication: "Recent hip replacement"},
	},
	"lower back pain": {
		{Name: "Cat-cow", Sets: "2x10 cycles", Progression: "Add bird dog from cat-cow", Regression: "Pelvic tilts only (supine)", Contraindication: "Spondylolisthesis with instability"},
		{Name: "Bird dog", Sets: "3x8 each side", Progression: "Add resistance band", Regression: "Hands and knees only (no limb lift)", Contraindication: "None standard"},
		{Name: "McGill curl-up", Sets: "3x10", Progression: "Increase hold to 10s", Regression: "Head lift only", Contraindication: "Recent abdominal surgery"},
		{Name: "Glute bridges", Sets: "3x12", Progression: "Single-leg bridge", Regression: "Smaller range of motion", Contraindication: "Acute SI joint flare"},
	},
	"neck pain": {
		{Name: "Chin tucks", Sets: "3x10 (5s hold)", Progression: "Add resistance with hand", Regression: "Supine chin tucks", Contraindication: "Cervical instability"},
		{Name: "Scalene stretch", Sets: "2x30s each side", Progression: "Add gentle overpressure", Regression: "Active range only", Contraindication: "Thoracic outlet syndrome (acute)"},
		{Name: "Thoracic extension", Sets: "2x10 over foam roller", Progression: "Arms overhead", Regression: "Towel roll (smaller ROM)", Contraindication: "Osteoporosis with compression fracture history"},
	},
	"hip pain": {
		{Name: "Clamshells", Sets: "3x15 each side", Progression: "Add resistance band", Regression: "Smaller range of motion", Contraindication: "Labral tear (if painful)"},
		{Name: "Hip flexor stretch (half-kneeling)", Sets: "3x30s each side", Progression: "Add lateral trunk lean", Regression: "Standing lunge stretch", Contraindication: "Acute hip flexor strain"},
		{Name: "90/90 stretch", Sets: "2x30s each side", Progression: "Active transitions", Regression: "Supported with cushion", Contraindication: "Severe hip impingement"},
	},
	"posture": {
		{Name: "Wall angels", Sets: "3x10", Progression: "Add band resistance", Regression: "Seated arm slides", Contraindication: "Acute rotator cuff injury"},
		{Name: "Band pull-aparts", Sets: "3x15", Progression: "Heavier band", Regression: "No band (arm movement only)", Contraindication: "None standard"},
		{Name: "Doorway stretch (pec)", Sets: "3x30s", Progression: "Vary arm angles (high/mid/low)", Regression: "Wall corner stretch", Contraindication: "Anterior shoulder instability"},
	},
	"cancer fatigue exercise": {
		{Name: "5-minute walk intervals", Sets: "2-3 intervals, rest between", Progression: "Increase to 10-min walks", Regression: "Seated marching in place", Contraindication: "Platelet count <50,000; active infection; bone metastasis at weight-bearing site"},
		{Name: "Seated arm raises", Sets: "2x8 (light or no weight)", Progression: "Add 1-2 lb weights", Regression: "Assisted range of motion", Contraindication: "Lymphedema (affected arm)"},
		{Name: "Diaphragmatic breathing", Sets: "3x5 breaths", Progression: "Add 4-7-8 pattern", Regression: "Hands on belly awareness only", Contraindication: "None standard"},
	},
}
