// Package worker provides a parallel question generation worker pool.
package worker

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MeKo-Tech/huequiz/internal/options"
)

// Generator builds the question for one task.
type Generator interface {
	Generate(ctx context.Context, task Task) (options.Question, error)
}

// Task represents a single question to generate.
type Task struct {
	Index           int
	Seed            uint64
	DifficultyRange int
}

// Result represents the outcome of a generation task.
type Result struct {
	Task     Task
	Question options.Question
	Err      error
	Elapsed  time.Duration
}

// ProgressFunc is called after each task completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Generator  Generator
	OnProgress ProgressFunc
}

// Pool manages parallel question generation.
type Pool struct {
	workers    int
	generator  Generator
	onProgress ProgressFunc
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		generator:  cfg.Generator,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all tasks and returns results ordered by task index.
// The function blocks until all tasks complete or the context is cancelled.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan Task, len(tasks))
	resultCh := make(chan Result, len(tasks))

	var (
		completed int
		failed    int
		mu        sync.Mutex
	)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	go func() {
		defer close(taskCh)
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]Result, 0, len(tasks))
	done := make(chan struct{})

	go func() {
		for result := range resultCh {
			results = append(results, result)

			mu.Lock()
			completed++
			if result.Err != nil {
				failed++
			}
			c, f := completed, failed
			mu.Unlock()

			if p.onProgress != nil {
				p.onProgress(c, len(tasks), f)
			}
		}
		close(done)
	}()

	wg.Wait()
	close(resultCh)
	<-done

	sort.Slice(results, func(i, j int) bool {
		return results[i].Task.Index < results[j].Task.Index
	})
	return results
}

func (p *Pool) worker(ctx context.Context, tasks <-chan Task, results chan<- Result) {
	for task := range tasks {
		select {
		case <-ctx.Done():
			results <- Result{
				Task: task,
				Err:  ctx.Err(),
			}
			continue
		default:
		}

		start := time.Now()
		q, err := p.generator.Generate(ctx, task)
		results <- Result{
			Task:     task,
			Question: q,
			Err:      err,
			Elapsed:  time.Since(start),
		}
	}
}

// SeededGenerator builds each question from a generator seeded with the
// task's own seed, so a batch is reproducible whatever the scheduling.
type SeededGenerator struct{}

// Generate implements Generator.
func (SeededGenerator) Generate(ctx context.Context, task Task) (options.Question, error) {
	if err := ctx.Err(); err != nil {
		return options.Question{}, err
	}
	return options.NewGenerator(options.NewSource(task.Seed)).Next(task.DifficultyRange)
}

// Tasks builds n tasks whose seeds derive from base.
func Tasks(n int, base uint64, difRange int) []Task {
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = Task{Index: i, Seed: base + uint64(i), DifficultyRange: difRange}
	}
	return tasks
}
