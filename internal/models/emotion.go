package models

// Emotion is one of the eight categories produced by the speech emotion
// model. The labels match the classifier's output vocabulary exactly.
type Emotion string

const (
	EmotionAngry     Emotion = "angry"
	EmotionCalm      Emotion = "calm"
	EmotionDisgust   Emotion = "disgust"
	EmotionFearful   Emotion = "fearful"
	EmotionHappy     Emotion = "happy"
	EmotionNeutral   Emotion = "neutral"
	EmotionSad       Emotion = "sad"
	EmotionSurprised Emotion = "surprised"
)

// Emotions lists all categories in the classifier's label order.
var Emotions = []Emotion{
	EmotionAngry,
	EmotionCalm,
	EmotionDisgust,
	EmotionFearful,
	EmotionHappy,
	EmotionNeutral,
	EmotionSad,
	EmotionSurprised,
}

// Canonical glyph per emotion. Downstream mood sets and the mood-level
// scale are keyed by these glyphs because entries store the user's
// selected emoji, not the emotion label.
var emotionGlyphs = map[Emotion]string{
	EmotionAngry:     "😠",
	EmotionCalm:      "😌",
	EmotionDisgust:   "🤢",
	EmotionFearful:   "😨",
	EmotionHappy:     "😊",
	EmotionNeutral:   "😐",
	EmotionSad:       "😢",
	EmotionSurprised: "😲",
}

var glyphEmotions = func() map[string]Emotion {
	m := make(map[string]Emotion, len(emotionGlyphs))
	for e, g := range emotionGlyphs {
		m[g] = e
	}
	return m
}()

// Glyph returns the canonical emoji for e.
func (e Emotion) Glyph() string {
	return emotionGlyphs[e]
}

// EmotionForGlyph resolves a glyph back to its emotion. ok is false for
// glyphs outside the canonical set.
func EmotionForGlyph(glyph string) (Emotion, bool) {
	e, ok := glyphEmotions[glyph]
	return e, ok
}

// Mood sets used by the pattern detector and the weekly summary. These
// are product configuration, not algorithm: the detector only asks
// set membership.
var (
	lowMoodEmotions  = []Emotion{EmotionSad, EmotionFearful, EmotionAngry, EmotionDisgust}
	negativeEmotions = []Emotion{EmotionSad, EmotionFearful}
	positiveEmotions = []Emotion{EmotionHappy, EmotionCalm}
)

func glyphSet(emotions []Emotion) map[string]bool {
	s := make(map[string]bool, len(emotions))
	for _, e := range emotions {
		s[e.Glyph()] = true
	}
	return s
}

var (
	lowMoodGlyphs  = glyphSet(lowMoodEmotions)
	negativeGlyphs = glyphSet(negativeEmotions)
	positiveGlyphs = glyphSet(positiveEmotions)
)

// IsLowMoodGlyph reports whether the glyph belongs to the low-mood set
// that feeds the consecutive-low rule.
func IsLowMoodGlyph(glyph string) bool {
	return lowMoodGlyphs[glyph]
}

// IsNegativeGlyph reports whether the glyph belongs to the negative set
// used by the sudden-drop rule and the weekly summary.
func IsNegativeGlyph(glyph string) bool {
	return negativeGlyphs[glyph]
}

// IsPositiveGlyph reports whether the glyph belongs to the positive set
// used by the sudden-drop rule and the weekly summary.
func IsPositiveGlyph(glyph string) bool {
	return positiveGlyphs[glyph]
}

// DefaultMoodLevel is assigned to glyphs outside the canonical scale.
const DefaultMoodLevel = 5

// Mood level on a 1-9 scale, used by the mood-activity correlation.
var moodLevels = map[string]int{
	EmotionHappy.Glyph():     9,
	EmotionCalm.Glyph():      8,
	EmotionSurprised.Glyph(): 6,
	EmotionNeutral.Glyph():   5,
	EmotionDisgust.Glyph():   3,
	EmotionFearful.Glyph():   2,
	EmotionAngry.Glyph():     2,
	EmotionSad.Glyph():       1,
}

// MoodLevel maps a selected emoji to its numeric mood level, falling
// back to DefaultMoodLevel for unmapped glyphs.
func MoodLevel(glyph string) int {
	if level, ok := moodLevels[glyph]; ok {
		return level
	}
	return DefaultMoodLevel
}
