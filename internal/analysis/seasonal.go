package analysis

import (
	"slices"
	"time"

	"TrendEngine/internal/domain"
)

type season struct {
	months        []time.Month
	name          string
	note          string
	angles        []string
	boostKeywords []string
}

// Seasonal returns the calendar context for the month of day.
func Seasonal(day time.Time) domain.SeasonalContext {
	entry := calendar[0]
	for _, s := range calendar {
		if slices.Contains(s.months, day.Month()) {
			entry = s
			break
		}
	}
	return domain.SeasonalContext{
		SeasonName:            entry.name,
		ContextNote:           entry.note,
		SuggestedAngles:       slices.Clone(entry.angles),
		TrendingKeywordsBoost: slices.Clone(entry.boostKeywords),
		Month:                 int(day.Month()),
		Date:                  day.Format(time.DateOnly),
	}
}

var calendar = []season{
	{
		months: []time.Month{time.January},
		name:   "New Year Resolution Rush",
		note: "Gym memberships spike and desk workers flood fitness classes. " +
			"New Year 'new body' energy is high but injury risk rises as " +
			"beginners push too hard too fast.",
		angles: []string{
			"Desk-to-gym transition: how to avoid the January injury spike",
			"New Year resolution-proof mobility routine",
			"Why your 'new year new body' plan needs a movement screen first",
		},
		boostKeywords: []string{
			"new year fitness", "gym beginner pain", "new year new body",
			"desk to gym", "resolution workout", "beginner back pain",
		},
	},
	{
		months: []time.Month{time.February},
		name:   "Winter Stiffness & Stress",
		note: "Cold weather stiffness lingers, tax-season stress elevates " +
			"tension patterns, and Valentine's Day creates interest in " +
			"couple workouts and partner stretching.",
		angles: []string{
			"Valentine's partner stretching routine for couples",
			"Tax-season tension: where stress hides in your body",
			"Winter stiffness SOS: the 5-minute morning warm-up",
		},
		boostKeywords: []string{
			"couple workout", "partner stretching", "winter stiffness",
			"stress tension neck", "tax season stress", "cold weather joint pain",
		},
	},
	{
		months: []time.Month{time.March, time.April},
		name:   "Spring Activity Surge",
		note: "Warmer weather pulls people outdoors: running, gardening, " +
			"and yard work spike. 'Summer body prep' motivation peaks and " +
			"gardening injuries become surprisingly common.",
		angles: []string{
			"Summer body prep starts with mobility, not cardio",
			"Gardening injuries are real: protect your back this spring",
			"Spring running comeback: avoiding shin splints and knee pain",
		},
		boostKeywords: []string{
			"summer body prep", "gardening back pain", "spring running",
			"outdoor exercise", "yard work injury", "shin splints",
		},
	},
	{
		months: []time.Month{time.May},
		name:   "Weekend Warrior Season",
		note: "Memorial Day weekend warriors emerge: people who've been " +
			"sedentary jump into hiking, running, and outdoor sports. " +
			"Overuse injuries and trail-related tweaks surge.",
		angles: []string{
			"Weekend warrior survival guide: don't let Memorial Day wreck your back",
			"Trail running season: ankles, knees, and what to strengthen first",
			"Hiking injury prevention: the pre-hike mobility check",
		},
		boostKeywords: []string{
			"weekend warrior injury", "hiking knee pain", "outdoor running",
			"memorial day fitness", "trail running pain", "hiking injury",
		},
	},
	{
		months: []time.Month{time.June, time.July, time.August},
		name:   "Summer Activity Peak",
		note: "Peak outdoor activity season. Vacation travel introduces " +
			"prolonged sitting in cars and planes, dehydration causes " +
			"cramping, and overall activity volume is at its yearly high.",
		angles: []string{
			"Vacation travel pain: the airplane seat survival stretches",
			"Dehydration and cramping: the summer pain connection no one talks about",
			"Summer activity overload: when more exercise makes pain worse",
		},
		boostKeywords: []string{
			"travel back pain", "airplane stretches", "dehydration cramps",
			"summer exercise", "vacation fitness", "road trip pain", "swimming shoulder pain",
		},
	},
	{
		months: []time.Month{time.September},
		name:   "RTO Wave",
		note: "Return-to-office mandates and back-to-school transitions put " +
			"people back at desks full-time. Desk pain resurges after a " +
			"summer of relative movement freedom.",
		angles: []string{
			"RTO survival: your desk is wrecking your summer gains",
			"Back-to-school back pain: it's not just the backpacks",
			"Desk pain resurgence: the September slump is real",
		},
		boostKeywords: []string{
			"return to office pain", "desk pain", "back to school posture",
			"ergonomic setup", "office chair back pain", "RTO desk ergonomics",
		},
	},
	{
		months: []time.Month{time.October},
		name:   "Marathon Season Peak",
		note: "Major marathons (Chicago, NYC) drive peak running culture. " +
			"Fall sports injuries from football, soccer, and weekend " +
			"leagues add to the mix.",
		angles: []string{
			"Marathon recovery: what to do the week after race day",
			"Fall sports injury prevention for weekend league warriors",
			"Runner's knee season: why October is peak IT band flare-up time",
		},
		boostKeywords: []string{
			"marathon recovery", "runner's knee", "IT band pain",
			"fall sports injury", "running pain", "post-marathon soreness",
		},
	},
	{
		months: []time.Month{time.November, time.December},
		name:   "Holiday Stress & Travel",
		note: "Holiday travel means long drives and flights. Cold weather " +
			"stiffness returns, holiday stress creates tension headaches " +
			"and neck pain, and gift-guide angles open up for fitness " +
			"and recovery products.",
		angles: []string{
			"Holiday travel pain survival kit: stretches for the car and plane",
			"Cold weather stiffness: why your joints hate December",
			"Gift guide angle: recovery tools that actually work",
		},
		boostKeywords: []string{
			"holiday travel pain", "cold weather stiffness", "holiday stress tension",
			"gift guide fitness", "winter joint pain", "tension headache holiday", "foam roller gift",
		},
	},
}
