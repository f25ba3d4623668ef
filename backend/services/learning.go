package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// LearningEngine derives study recommendations from performance history.
// Everything here is linear formulas and threshold tables over past scores.
type LearningEngine struct{}

func NewLearningEngine() *LearningEngine {
	return &LearningEngine{}
}

// PerformanceRecord is one scored activity in a user's history.
type PerformanceRecord struct {
	Score           float64   `json:"score"`
	DurationMinutes int       `json:"duration"`
	ExerciseType    string    `json:"exercise_type"`
	Skills          []string  `json:"skills_tested"`
	Timestamp       time.Time `json:"timestamp"`
}

// LearningProfile is the analyzed pattern for one user.
type LearningProfile struct {
	UserID               uint              `json:"user_id"`
	LearningVelocity     float64           `json:"learning_velocity"`
	RetentionRate        float64           `json:"retention_rate"`
	LearningStyle        string            `json:"learning_style"`
	ConsistencyScore     float64           `json:"consistency_score"`
	OptimalSessionLength int               `json:"optimal_session_length"`
	PeakPerformanceHours []int             `json:"peak_performance_hours"`
	WeakAreas            []string          `json:"weak_areas"`
	StrongAreas          []string          `json:"strong_areas"`
	SuccessPrediction    SuccessPrediction `json:"success_prediction"`
}

type SuccessPrediction struct {
	SuccessProbability float64 `json:"success_probability"`
	Confidence         float64 `json:"confidence"`
	PredictedTimeline  string  `json:"predicted_timeline"`
}

// AnalyzeLearningPattern builds the profile; an empty history yields the
// default profile rather than an error.
func (e *LearningEngine) AnalyzeLearningPattern(userID uint, history []PerformanceRecord) LearningProfile {
	if len(history) == 0 {
		return defaultLearningProfile(userID)
	}

	velocity := learningVelocity(history)
	retention := retentionRate(history)
	consistency := consistencyScore(history)
	strong, weak := strengthsAndWeaknesses(history)

	return LearningProfile{
		UserID:               userID,
		LearningVelocity:     velocity,
		RetentionRate:        retention,
		LearningStyle:        learningStyle(history),
		ConsistencyScore:     consistency,
		OptimalSessionLength: optimalSessionLength(history),
		PeakPerformanceHours: peakHours(history),
		WeakAreas:            weak,
		StrongAreas:          strong,
		SuccessPrediction:    predictSuccess(velocity, retention, consistency),
	}
}

func defaultLearningProfile(userID uint) LearningProfile {
	return LearningProfile{
		UserID:               userID,
		LearningVelocity:     0.5,
		RetentionRate:        0.75,
		LearningStyle:        "mixed",
		ConsistencyScore:     0.5,
		OptimalSessionLength: 15,
		PeakPerformanceHours: []int{9, 14, 19},
		WeakAreas:            []string{"pronunciation", "grammar"},
		StrongAreas:          []string{"vocabulary"},
		SuccessPrediction: SuccessPrediction{
			SuccessProbability: 0.7,
			Confidence:         0.6,
			PredictedTimeline:  "6-9 months",
		},
	}
}

// learningVelocity is the slope of the last ten scores, normalized to [0,1].
func learningVelocity(history []PerformanceRecord) float64 {
	scores := recentScores(history, 10)
	if len(scores) < 2 {
		return 0.5
	}

	slope := linearSlope(scores)
	return clamp01((slope + 10) / 20)
}

// linearSlope is a least-squares fit over index -> score.
func linearSlope(scores []float64) float64 {
	n := float64(len(scores))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range scores {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// retentionRate compares the mean of the latest five scores against the
// five before them.
func retentionRate(history []PerformanceRecord) float64 {
	if len(history) <= 5 {
		return 0.75
	}

	recent := recentScores(history, 5)
	start := len(history) - 10
	if start < 0 {
		start = 0
	}
	older := make([]float64, 0, 5)
	for _, r := range history[start : len(history)-5] {
		older = append(older, r.Score)
	}

	olderMean := mean(older)
	if olderMean < 1 {
		olderMean = 1
	}
	ratio := mean(recent) / olderMean
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// learningStyle buckets score mass by exercise type keywords.
func learningStyle(history []PerformanceRecord) string {
	styleScores := map[string]float64{
		"visual": 0, "auditory": 0, "kinesthetic": 0, "reading_writing": 0,
	}

	for _, r := range history {
		t := strings.ToLower(r.ExerciseType)
		switch {
		case strings.Contains(t, "visual") || strings.Contains(t, "image"):
			styleScores["visual"] += r.Score
		case strings.Contains(t, "audio") || strings.Contains(t, "listening"):
			styleScores["auditory"] += r.Score
		case strings.Contains(t, "interactive") || strings.Contains(t, "game"):
			styleScores["kinesthetic"] += r.Score
		default:
			styleScores["reading_writing"] += r.Score
		}
	}

	best, bestScore := "mixed", 0.0
	for style, score := range styleScores {
		if score > bestScore {
			best, bestScore = style, score
		}
	}
	return best
}

// consistencyScore is 1 minus the score spread, on a 0-100 scale.
func consistencyScore(history []PerformanceRecord) float64 {
	scores := recentScores(history, 10)
	if len(scores) < 3 {
		return 0.5
	}
	return clamp01(1 - stddev(scores)/100)
}

func strengthsAndWeaknesses(history []PerformanceRecord) (strong, weak []string) {
	bySkill := make(map[string][]float64)
	for _, r := range history {
		skills := r.Skills
		if len(skills) == 0 {
			skills = []string{"general"}
		}
		for _, s := range skills {
			bySkill[s] = append(bySkill[s], r.Score)
		}
	}

	skills := make([]string, 0, len(bySkill))
	for s := range bySkill {
		skills = append(skills, s)
	}
	sort.Strings(skills)

	for _, s := range skills {
		avg := mean(bySkill[s])
		switch {
		case avg > 80:
			strong = append(strong, s)
		case avg < 60:
			weak = append(weak, s)
		}
	}
	return strong, weak
}

func predictSuccess(velocity, retention, consistency float64) SuccessPrediction {
	score := velocity*0.3 + retention*0.4 + consistency*0.3

	timeline := "6-12 months"
	if score > 0.7 {
		timeline = "3-6 months"
	}

	return SuccessPrediction{
		SuccessProbability: score,
		Confidence:         math.Min(0.95, 0.6+consistency*0.4),
		PredictedTimeline:  timeline,
	}
}

// optimalSessionLength finds the 5-minute duration bucket with the best
// average score, clamped to 10..30 minutes.
func optimalSessionLength(history []PerformanceRecord) int {
	buckets := make(map[int][]float64)
	for _, r := range history {
		if r.DurationMinutes <= 0 {
			continue
		}
		bucket := (r.DurationMinutes / 5) * 5
		buckets[bucket] = append(buckets[bucket], r.Score)
	}
	if len(buckets) == 0 {
		return 15
	}

	best, bestAvg := 15, -1.0
	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if avg := mean(buckets[k]); avg > bestAvg {
			best, bestAvg = k, avg
		}
	}

	if best < 10 {
		best = 10
	}
	if best > 30 {
		best = 30
	}
	return best
}

// peakHours returns the top three hours of day by average score; hours with
// fewer than two samples are ignored.
func peakHours(history []PerformanceRecord) []int {
	byHour := make(map[int][]float64)
	for _, r := range history {
		if r.Timestamp.IsZero() {
			continue
		}
		h := r.Timestamp.Hour()
		byHour[h] = append(byHour[h], r.Score)
	}

	type hourAvg struct {
		hour int
		avg  float64
	}
	var averages []hourAvg
	for h, scores := range byHour {
		if len(scores) >= 2 {
			averages = append(averages, hourAvg{h, mean(scores)})
		}
	}
	if len(averages) == 0 {
		return []int{9, 14, 19}
	}

	sort.Slice(averages, func(i, j int) bool {
		if averages[i].avg != averages[j].avg {
			return averages[i].avg > averages[j].avg
		}
		return averages[i].hour < averages[j].hour
	})

	var hours []int
	for i := 0; i < len(averages) && i < 3; i++ {
		hours = append(hours, averages[i].hour)
	}
	return hours
}

// AdaptiveContent is a generated lesson plan tuned to a profile.
type AdaptiveContent struct {
	LessonID         string             `json:"lesson_id"`
	DifficultyLevel  string             `json:"difficulty_level"`
	ContentType      string             `json:"content_type"`
	Exercises        []AdaptiveExercise `json:"exercises"`
	SpacedRepetition []RepetitionItem   `json:"spaced_repetition_items"`
	PredictedSuccess float64            `json:"predicted_success"`
}

type AdaptiveExercise struct {
	Type            string `json:"type"`
	Difficulty      string `json:"difficulty"`
	Style           string `json:"style"`
	DurationMinutes int    `json:"duration"`
	Importance      string `json:"importance"`
}

type RepetitionItem struct {
	Content      string    `json:"content"`
	NextReview   time.Time `json:"next_review"`
	IntervalDays int       `json:"interval"`
	Importance   string    `json:"importance"`
}

func (e *LearningEngine) GenerateAdaptiveContent(profile LearningProfile, lessonType string) AdaptiveContent {
	difficulty := optimalDifficulty(profile)

	return AdaptiveContent{
		LessonID:         fmt.Sprintf("adaptive_%d_%s", profile.UserID, time.Now().Format("20060102_150405")),
		DifficultyLevel:  difficulty,
		ContentType:      contentTypeForStyle(profile.LearningStyle),
		Exercises:        personalizedExercises(profile, lessonType),
		SpacedRepetition: spacedRepetitionItems(profile),
		PredictedSuccess: predictedExerciseSuccess(profile, difficulty),
	}
}

func optimalDifficulty(profile LearningProfile) string {
	p := profile.SuccessPrediction.SuccessProbability
	v := profile.LearningVelocity
	switch {
	case p > 0.8 && v > 0.7:
		return "challenging"
	case p > 0.6 && v > 0.5:
		return "moderate"
	default:
		return "comfortable"
	}
}

func contentTypeForStyle(style string) string {
	types := map[string]string{
		"visual":          "interactive_visuals",
		"auditory":        "audio_intensive",
		"kinesthetic":     "gamified_practice",
		"reading_writing": "text_based",
	}
	if t, ok := types[style]; ok {
		return t
	}
	return "multimedia"
}

func personalizedExercises(profile LearningProfile, lessonType string) []AdaptiveExercise {
	var exercises []AdaptiveExercise

	for i, area := range profile.WeakAreas {
		if i >= 2 {
			break
		}
		exercises = append(exercises, AdaptiveExercise{
			Type:            area + "_practice",
			Difficulty:      "adaptive",
			Style:           profile.LearningStyle,
			DurationMinutes: 5,
			Importance:      "high",
		})
	}

	exercises = append(exercises, AdaptiveExercise{
		Type:            "mixed_review",
		Difficulty:      "moderate",
		Style:           profile.LearningStyle,
		DurationMinutes: 8,
		Importance:      "medium",
	})

	return exercises
}

func spacedRepetitionItems(profile LearningProfile) []RepetitionItem {
	items := []RepetitionItem{
		{
			Content:      "Past tense irregular verbs",
			NextReview:   time.Now().AddDate(0, 0, 3),
			IntervalDays: 3,
			Importance:   "high",
		},
	}
	for _, area := range profile.WeakAreas {
		items = append(items, RepetitionItem{
			Content:      "Targeted review: " + area,
			NextReview:   time.Now().AddDate(0, 0, 1),
			IntervalDays: 1,
			Importance:   "medium",
		})
	}
	return items
}

func predictedExerciseSuccess(profile LearningProfile, difficulty string) float64 {
	base := profile.SuccessPrediction.SuccessProbability
	switch difficulty {
	case "comfortable":
		base += 0.1
	case "challenging":
		base -= 0.1
	}
	if base < 0.1 {
		base = 0.1
	}
	if base > 0.95 {
		base = 0.95
	}
	return base
}

// LearningPath is the level roadmap derived from recent scores.
type LearningPath struct {
	CurrentLevel       string   `json:"current_level"`
	TargetLevel        string   `json:"target_level"`
	ProgressPercentage float64  `json:"progress_percentage"`
	RecommendedFocus   []string `json:"recommended_focus"`
	EstimatedDuration  string   `json:"estimated_duration"`
	NextMilestones     []string `json:"next_milestones"`
}

func (e *LearningEngine) GenerateLearningPath(history []PerformanceRecord, targetLevel string) LearningPath {
	if targetLevel == "" {
		targetLevel = "advanced"
	}

	if len(history) == 0 {
		return LearningPath{
			CurrentLevel:      "beginner",
			TargetLevel:       targetLevel,
			RecommendedFocus:  []string{"basic_pronunciation", "common_phrases"},
			EstimatedDuration: "4 weeks",
			NextMilestones:    levelMilestones["beginner"],
		}
	}

	avg := mean(recentScores(history, 10))
	current := "beginner"
	switch {
	case avg >= 85:
		current = "advanced"
	case avg >= 70:
		current = "intermediate"
	}

	return LearningPath{
		CurrentLevel:       current,
		TargetLevel:        targetLevel,
		ProgressPercentage: math.Min(100, avg/90*100),
		RecommendedFocus:   levelFocusAreas[current],
		EstimatedDuration:  levelDuration(current, targetLevel),
		NextMilestones:     levelMilestones[current],
	}
}

var levelFocusAreas = map[string][]string{
	"beginner":     {"basic_pronunciation", "common_phrases", "simple_conversations"},
	"intermediate": {"fluency_building", "complex_sentences", "natural_rhythm"},
	"advanced":     {"accent_reduction", "professional_speaking", "cultural_nuances"},
}

var levelMilestones = map[string][]string{
	"beginner":     {"Achieve 70% pronunciation accuracy", "Complete 20 speaking sessions"},
	"intermediate": {"Maintain 85% fluency score", "Practice advanced conversations"},
	"advanced":     {"Perfect accent consistency", "Master professional communication"},
}

func levelDuration(current, target string) string {
	durations := map[[2]string]string{
		{"beginner", "intermediate"}:     "6-8 weeks",
		{"beginner", "advanced"}:         "12-16 weeks",
		{"intermediate", "advanced"}:     "6-10 weeks",
		{"intermediate", "intermediate"}: "2-4 weeks",
	}
	if d, ok := durations[[2]string{current, target}]; ok {
		return d
	}
	return "4-6 weeks"
}

// CoachingResponse is immediate feedback on a live performance payload.
type CoachingResponse struct {
	ImmediateFeedback string   `json:"immediate_feedback"`
	FocusArea         string   `json:"focus_area"`
	Adjustments       []string `json:"adjustments"`
	Encouragement     string   `json:"encouragement"`
}

func (e *LearningEngine) Coach(perf PerformanceData) CoachingResponse {
	feedback := "Good effort! Let's sharpen the weakest skill."
	focus := "accuracy"
	adjustments := []string{"Slow down and articulate each word"}

	switch {
	case perf.Score >= 90:
		feedback = "Excellent session! You're ready for harder material."
		focus = "challenge"
		adjustments = []string{"Increase difficulty next session", "Add native-speed listening"}
	case perf.Score >= 70:
		feedback = "Solid work. Consistency will push you over the next threshold."
		focus = "fluency"
		adjustments = []string{"Practice connected speech", "Shadow a native recording"}
	}

	if perf.Duration > 30 {
		adjustments = append(adjustments, "Consider shorter, more frequent sessions")
	}

	return CoachingResponse{
		ImmediateFeedback: feedback,
		FocusArea:         focus,
		Adjustments:       adjustments,
		Encouragement:     encouragements[int(perf.Score)%len(encouragements)],
	}
}

func recentScores(history []PerformanceRecord, n int) []float64 {
	start := len(history) - n
	if start < 0 {
		start = 0
	}
	scores := make([]float64, 0, n)
	for _, r := range history[start:] {
		scores = append(scores, r.Score)
	}
	return scores
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)))
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
