package memetic

import (
	"math/rand/v2"

	"github.com/pthm-cable/strike/field"
	"github.com/pthm-cable/strike/genome"
	"github.com/pthm-cable/strike/objective"
)

// State is the optimizer lifecycle stage.
type State int

const (
	StateInit State = iota
	StateEvolving
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateEvolving:
		return "evolving"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// eliteSlot is the population slot the refined genome is written to.
const eliteSlot = 0

// Result is everything a finished run exposes to reporting.
type Result struct {
	History     RunHistory
	Population  Population
	Seed        uint64
	Evaluations int
	State       State
}

// Best returns the last recorded best genome and fitness.
func (r *Result) Best() (genome.Genome, float64) {
	last, ok := r.History.Last()
	if !ok {
		i := r.Population.Best()
		return r.Population[i].Genome(), r.Population[i].fitness
	}
	return last.BestGenome.Clone(), last.BestFitness
}

// Optimizer owns the population and history of a single run.
type Optimizer struct {
	opts  Options
	model *objective.Model
	rng   *rand.Rand
	seed  uint64

	state       State
	generation  int
	population  Population
	history     RunHistory
	evaluations int
}

// NewOptimizer validates opts against f and prepares a run.
func NewOptimizer(opts Options, f *field.Field) (*Optimizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if f == nil || f.Len() == 0 {
		return nil, &ConfigError{Option: "targets", Reason: ErrNoTargets.Error()}
	}

	seed := rand.Uint64()
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	params := objective.DefaultParams()
	params.SeparationThreshold = opts.SeparationThreshold
	params.SeparationPenalty = opts.SeparationPenaltyCoeff

	return &Optimizer{
		opts:    opts,
		model:   objective.New(f, params),
		rng:     rand.New(rand.NewPCG(seed, seed)),
		seed:    seed,
		state:   StateInit,
		history: make(RunHistory, 0, opts.NumGenerations),
	}, nil
}

// Model returns the objective the optimizer maximizes.
func (o *Optimizer) Model() *objective.Model {
	return o.model
}

// Run validates the configuration, evolves for NumGenerations and returns the result.
func Run(opts Options, f *field.Field) (*Result, error) {
	o, err := NewOptimizer(opts, f)
	if err != nil {
		return nil, err
	}
	return o.Run()
}

// Run drives the optimizer from INIT to DONE.
func (o *Optimizer) Run() (*Result, error) {
	for o.state != StateDone {
		if err := o.advance(); err != nil {
			return nil, err
		}
	}
	return &Result{
		History:     o.history,
		Population:  o.population.clone(),
		Seed:        o.seed,
		Evaluations: o.evaluations,
		State:       o.state,
	}, nil
}

func (o *Optimizer) advance() error {
	switch o.state {
	case StateInit:
		o.population = randomPopulation(o.opts.PopulationSize, o.opts.NumGenes, o.opts.GeneBounds, o.rng)
		for i := range o.population {
			if err := o.check(o.population[i].genome, "init", i); err != nil {
				return err
			}
		}
		o.generation = 0
		o.state = StateEvolving
	case StateEvolving:
		if o.generation >= o.opts.NumGenerations {
			// only does work for a zero-generation run
			o.evaluations += o.population.Evaluate(o.model)
			o.state = StateDone
			return nil
		}
		if err := o.step(); err != nil {
			return err
		}
		o.generation++
	}
	return nil
}

// step runs one generation: evaluate, select, breed, refine the best, record.
func (o *Optimizer) step() error {
	o.evaluations += o.population.Evaluate(o.model)

	parents := selectParents(o.population, o.opts.ParentsMating)

	next := make(Population, 0, o.opts.PopulationSize)
	next = append(next, parents[:o.opts.EliteCount]...)

	offspring := breed(parents, o.opts.PopulationSize-o.opts.EliteCount, o.opts.MutationRate, o.opts.GeneBounds, o.rng)
	for _, child := range offspring {
		if err := o.check(child, "offspring", len(next)); err != nil {
			return err
		}
		next = append(next, NewIndividual(child))
	}
	o.evaluations += next.Evaluate(o.model)

	best := next.Best()
	refined, fitness, evals := refine(o.model, next[best].genome, next[best].fitness, o.opts.LocalSearchStep, o.opts.GeneBounds)
	o.evaluations += evals

	entry := HistoryEntry{
		Generation:  o.generation,
		BestGenome:  next[best].genome.Clone(),
		BestFitness: next[best].fitness,
	}
	if fitness > next[best].fitness {
		if err := o.check(refined, "refine", eliteSlot); err != nil {
			return err
		}
		next[eliteSlot] = Individual{genome: refined, fitness: fitness, evaluated: true}
		entry.BestGenome = refined.Clone()
		entry.BestFitness = fitness
		entry.Refined = true
	}

	o.population = next
	o.history = append(o.history, entry)
	return nil
}

func (o *Optimizer) check(g genome.Genome, stage string, slot int) error {
	if err := g.Check(o.opts.NumGenes, o.opts.GeneBounds); err != nil {
		return &InvariantError{Generation: o.generation, Stage: stage, Index: slot, Err: err}
	}
	return nil
}
