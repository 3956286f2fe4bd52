package classify

import (
	"sync"

	"github.com/jbrukh/bayesian"
	"github.com/rs/zerolog"

	"github.com/finbuddy-dev/finbuddy/internal/model"
)

// DefaultConfidenceThreshold is the minimum posterior probability a
// model prediction needs before it is trusted over CategoryOther.
const DefaultConfidenceThreshold = 0.6

// paddingToken trains the synthetic class added when the corpus holds a
// single category. The underscores keep it out of any real document:
// Tokenize only ever emits alphanumeric runs.
const paddingToken = "_pad_"

// Config locates the training data and the persisted model pair.
type Config struct {
	CorpusPath     string
	OverridesPath  string
	VectorizerPath string
	ModelPath      string
	Threshold      float64
}

// Classifier assigns categories to transaction descriptions. Override
// patterns are checked first; everything else goes through a TF-IDF
// naive Bayes model trained lazily from the corpus on first use.
type Classifier struct {
	cfg       Config
	overrides []Override
	store     Store
	log       zerolog.Logger

	mu      sync.Mutex
	vec     *Vectorizer
	cl      *bayesian.Classifier
	loaded  bool
	loadErr error
}

func New(cfg Config) (*Classifier, error) {
	if cfg.Threshold == 0 {
		cfg.Threshold = DefaultConfidenceThreshold
	}

	var overrides []Override
	var err error
	if cfg.OverridesPath == "" {
		overrides = DefaultOverrides()
	} else {
		overrides, err = LoadOverrides(cfg.OverridesPath)
		if err != nil {
			return nil, err
		}
	}

	return &Classifier{
		cfg:       cfg,
		overrides: overrides,
		store:     Store{VectorizerPath: cfg.VectorizerPath, ModelPath: cfg.ModelPath},
		log:       zerolog.Nop(),
	}, nil
}

func (c *Classifier) SetLogger(log zerolog.Logger) {
	c.log = log
}

// Prediction is a category with the model's confidence in it. Override
// matches report confidence 1.
type Prediction struct {
	Category   model.Category
	Confidence float64
}

// Classify predicts a category for a raw statement description. It
// never fails: when the model cannot be trained or the description
// yields no known tokens, the prediction falls back to CategoryOther
// with zero confidence.
func (c *Classifier) Classify(description string) Prediction {
	for _, ov := range c.overrides {
		if ov.Pattern.MatchString(description) {
			return Prediction{Category: ov.Category, Confidence: 1}
		}
	}

	if err := c.ensureModel(); err != nil {
		c.log.Debug().Err(err).Str("description", description).Msg("no model, falling back")
		return Prediction{Category: model.CategoryOther}
	}

	c.mu.Lock()
	vec, cl := c.vec, c.cl
	c.mu.Unlock()

	tokens := vec.Transform(Tokenize(NormalizeDescription(description)))
	if len(tokens) == 0 {
		c.log.Debug().Str("description", description).Msg("no known tokens")
		return Prediction{Category: model.CategoryOther}
	}

	scores, inx, _, err := cl.SafeProbScores(tokens)
	if err != nil {
		c.log.Debug().Err(err).Str("description", description).Msg("scoring failed")
		return Prediction{Category: model.CategoryOther}
	}

	confidence := scores[inx]
	predicted, err := model.ParseCategory(vec.Classes[inx])
	if err != nil {
		c.log.Warn().Err(err).Msg("model produced unrecognized class")
		return Prediction{Category: model.CategoryOther}
	}
	if confidence < c.cfg.Threshold {
		c.log.Debug().
			Str("description", description).
			Str("category", string(predicted)).
			Float64("confidence", confidence).
			Msg("below confidence threshold")
		return Prediction{Category: model.CategoryOther, Confidence: confidence}
	}
	return Prediction{Category: predicted, Confidence: confidence}
}

// Categorize is Classify reduced to the category alone.
func (c *Classifier) Categorize(description string) model.Category {
	return c.Classify(description).Category
}

// Train fits the model from the corpus and persists it, replacing any
// cached or stored model pair.
func (c *Classifier) Train() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trainLocked()
}

// Reload drops the cached model so the next prediction loads or
// retrains from disk.
func (c *Classifier) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vec = nil
	c.cl = nil
	c.loaded = false
	c.loadErr = nil
}

// ensureModel loads the persisted model pair, training from the corpus
// when no usable pair exists. The result, success or failure, is cached
// until Reload.
func (c *Classifier) ensureModel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.loadErr
	}

	vec, cl, ok, err := c.store.Load()
	if err != nil {
		// Artifacts are derived data; a corrupt pair is rebuilt, not fatal.
		c.log.Warn().Err(err).Msg("stored model unreadable, retraining")
		ok = false
	}
	if ok {
		c.vec = vec
		c.cl = cl
		c.loaded = true
		return nil
	}

	if err := c.trainLocked(); err != nil {
		// Logged once here; predictions fall back quietly afterwards.
		c.log.Warn().Err(err).Msg("classifier model unavailable")
		return err
	}
	return nil
}

// trainLocked fits and persists the model. Callers hold c.mu.
func (c *Classifier) trainLocked() error {
	corpus, err := LoadCorpus(c.cfg.CorpusPath)
	if err != nil {
		c.loaded = true
		c.loadErr = err
		return err
	}

	vec, cl, err := c.fitCorpus(corpus)
	if err != nil {
		c.loaded = true
		c.loadErr = err
		return err
	}

	if err := c.store.Save(vec, cl); err != nil {
		c.loaded = true
		c.loadErr = err
		return err
	}

	c.vec = vec
	c.cl = cl
	c.loaded = true
	c.loadErr = nil
	c.log.Info().
		Int("examples", corpus.Len()).
		Int("vocabulary", len(vec.Vocabulary)).
		Int("classes", len(vec.Classes)).
		Msg("classifier trained")
	return nil
}

// fitCorpus builds the vectorizer and model from training data. Each
// description is expanded into decorated variants so the model sees the
// shapes real statement rows take.
func (c *Classifier) fitCorpus(corpus *Corpus) (*Vectorizer, *bayesian.Classifier, error) {
	if corpus.Len() == 0 {
		return nil, nil, TrainingDataError{Reason: "training corpus is empty"}
	}

	type example struct {
		tokens   []string
		category model.Category
	}
	var examples []example
	vec := NewVectorizer()
	for _, desc := range corpus.Descriptions() {
		cat, _ := corpus.Category(desc)
		for _, variant := range expandVariants(desc) {
			tokens := Tokenize(NormalizeDescription(variant))
			if len(tokens) == 0 {
				continue
			}
			examples = append(examples, example{tokens: tokens, category: cat})
		}
	}
	if len(examples) == 0 {
		return nil, nil, TrainingDataError{Reason: "no usable tokens in training corpus"}
	}

	docs := make([][]string, len(examples))
	for i, ex := range examples {
		docs[i] = ex.tokens
	}
	vec.Fit(docs)

	used := corpus.Categories()
	classes := make([]bayesian.Class, 0, len(used)+1)
	for _, cat := range used {
		classes = append(classes, bayesian.Class(cat))
	}
	// The model needs at least two classes. A corpus that only labels
	// one gets a synthetic class trained on a token no real description
	// can produce, so real predictions stay near certainty.
	padded := false
	if len(classes) < 2 {
		usedSet := make(map[model.Category]bool, len(used))
		for _, cat := range used {
			usedSet[cat] = true
		}
		for _, cat := range model.AllCategories() {
			if !usedSet[cat] {
				classes = append(classes, bayesian.Class(cat))
				padded = true
				break
			}
		}
	}

	vec.Classes = make([]string, len(classes))
	for i, cls := range classes {
		vec.Classes[i] = string(cls)
	}

	cl := bayesian.NewClassifierTfIdf(classes...)
	for _, ex := range examples {
		cl.Learn(ex.tokens, bayesian.Class(ex.category))
	}
	if padded {
		cl.Learn([]string{paddingToken}, classes[len(classes)-1])
	}
	cl.ConvertTermsFreqToTfIdf()

	return vec, cl, nil
}
