// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import "regexp"

// Vocabulary patterns are compiled once at package load and shared by all
// scorers. Word boundaries are enforced so short terms like "ai" do not
// match inside unrelated words.

var domainPattern = regexp.MustCompile(
	`(?i)\b(mathematics|matematica|matemática|algebra|geometry|geometria|calculus|cálculo|calculo|fractions?|frações|fracao|arithmetic|trigonometry)\b`)

// mathTopics earn a small domain bonus each when present.
var mathTopics = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\balgebra\b`),
	regexp.MustCompile(`(?i)\bgeometry\b`),
	regexp.MustCompile(`(?i)\bcalculus\b`),
	regexp.MustCompile(`(?i)\bfractions?\b`),
	regexp.MustCompile(`(?i)\barithmetic\b`),
}

// techniquePattern pairs a technique tag with its vocabulary.
type techniquePattern struct {
	tag string
	re  *regexp.Regexp
}

// techniquePatterns is ordered so emitted tags are deterministic.
var techniquePatterns = []techniquePattern{
	{"machine_learning", regexp.MustCompile(
		`(?i)\b(machine learning|deep learning|data mining|neural networks?|svm|random forests?|bayes|lstm|artificial intelligence|ai|predictive|classification|clustering)\b`)},
	{"learning_analytics", regexp.MustCompile(
		`(?i)\b(learning analytics|educational data mining|intelligent tutor(ing)?|adaptive learning|personalized learning|student modeling|competenc\w*|skills?|assessment)\b`)},
	{"neural_network", regexp.MustCompile(
		`(?i)\b(neural networks?|deep learning|cnn|rnn|lstm|transformers?)\b`)},
	{"tree_based", regexp.MustCompile(
		`(?i)\b(decision trees?|random forests?|xgboost|gradient boost(ing)?)\b`)},
	{"statistical", regexp.MustCompile(
		`(?i)\b(regression|bayes|markov|statistical models?)\b`)},
	{"clustering", regexp.MustCompile(
		`(?i)\b(cluster(ing)?|k-means|hierarchical|dbscan)\b`)},
}

// studyTypePattern pairs a study-type tag with its vocabulary and its
// methodology weight. The list is ordered by priority: the first match wins.
type studyTypePattern struct {
	tag    string
	weight float64
	re     *regexp.Regexp
}

var studyTypePatterns = []studyTypePattern{
	{"experimental", 3.0, regexp.MustCompile(
		`(?i)\b(experiment(al)?|randomized controlled trial|rct|controlled study)\b`)},
	{"quasi-experimental", 2.5, regexp.MustCompile(
		`(?i)\b(quasi-experiment(al)?|pre-post|comparison group)\b`)},
	{"case study", 2.0, regexp.MustCompile(
		`(?i)\b(case stud(y|ies)|pilot study)\b`)},
	{"user study", 2.0, regexp.MustCompile(
		`(?i)\b(user stud(y|ies)|usability test|user experience)\b`)},
	{"survey", 1.5, regexp.MustCompile(
		`(?i)\b(survey|questionnaire|interview)\b`)},
	{"review", 1.0, regexp.MustCompile(
		`(?i)\b(review|meta-analysis|systematic review|literature review)\b`)},
	{"proposal", 0.5, regexp.MustCompile(
		`(?i)\b(proposal|position paper|framework|architecture|design)\b`)},
}

// evalMethodPatterns is ordered so emitted tags are deterministic.
var evalMethodPatterns = []techniquePattern{
	{"statistical", regexp.MustCompile(
		`(?i)\b(statistical analysis|t-tests?|anova|chi-square|regression|correlation|significance)\b`)},
	{"performance", regexp.MustCompile(
		`(?i)\b(accuracy|precision|recall|f1-score|auc|rmse|mae|error rate)\b`)},
	{"qualitative", regexp.MustCompile(
		`(?i)\b(qualitative|interviews?|observation|content analysis|thematic analysis)\b`)},
	{"user_feedback", regexp.MustCompile(
		`(?i)\b(user feedback|satisfaction|likert|rating|evaluation)\b`)},
}

var venuePattern = regexp.MustCompile(`(?i)\b(journal|conference|proceedings)\b`)
