package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/TomTonic/seedfinder/gen3"
	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
	"github.com/TomTonic/seedfinder/search"
)

var mudkip = pokemon.PersonalInfo{
	Stats:     [6]uint8{50, 70, 50, 50, 50, 40},
	Gender:    31,
	Abilities: [3]uint16{67, 67, 6},
	Types:     [2]uint8{10, 10},
	Present:   true,
}

func main() {
	verbose := flag.Bool("v", false, "log search progress to stderr")
	runs := flag.Int("runs", search.MinimumSamples, "timed searches per worker configuration")
	flag.Parse()

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "seedfinder: ", log.LstdFlags|log.Lmicroseconds)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	entropy := rng.NewEntropy(64)
	profile := &pokemon.Profile{
		Name:    "example",
		Version: pokemon.Emerald,
		TID:     uint16(entropy.Uint32N(1 << 16)),
		SID:     uint16(entropy.Uint32N(1 << 16)),
	}
	tpl := &pokemon.StaticTemplate{
		Version: pokemon.Emerald,
		Specie:  258,
		Level:   5,
		Ability: pokemon.Any,
		Gender:  pokemon.Any,
		Info:    &mudkip,
	}
	filter := pokemon.NewFilter()

	seed := entropy.Uint32()
	gen, err := gen3.NewStaticGenerator(pokemon.Options{MaxAdvances: 4}, pokemon.Method1, profile, &filter)
	if err != nil {
		panic(err)
	}
	states := gen.Generate(seed, tpl)
	fmt.Printf("seed %08x, TID/SID %d/%d\n", seed, profile.TID, profile.SID)
	for i := range states {
		s := &states[i]
		fmt.Printf("  advance %d: PID %08x IVs %v nature %d shiny %d\n", s.Advances(), s.PID(), s.IVs(), s.Nature(), s.Shiny())
	}

	target := states[0].IVs()
	searcher, err := gen3.NewStaticSearcher(pokemon.Method1, profile, &filter, search.Config{Workers: runtime.NumCPU(), Logger: logger})
	if err != nil {
		panic(err)
	}
	if err := searcher.Search(ctx, target, target, tpl); err != nil {
		panic(err)
	}
	fmt.Printf("seeds producing IVs %v:\n", target)
	for _, r := range searcher.DrainResults() {
		fmt.Printf("  %08x PID %08x, %d advances after %08x\n", r.Seed(), r.PID(), rng.Distance(rng.NewPokeRNG(seed), r.Seed()), seed)
	}

	// Timed sweeps of every HP value around the target.
	low, high := target, target
	low[0], high[0] = 0, 31
	timed := func(workers int) []float64 {
		s, err := gen3.NewStaticSearcher(pokemon.Method1, profile, &filter, search.Config{Workers: workers, Logger: logger})
		if err != nil {
			panic(err)
		}
		var samples []float64
		for range *runs {
			if err := s.Search(ctx, low, high, tpl); err != nil {
				panic(err)
			}
			s.DrainResults()
			samples = append(samples, float64(s.Elapsed()))
		}
		return samples
	}
	parallel, single := timed(runtime.NumCPU()), timed(1)
	fmt.Printf("%d workers: median %v, 1 worker: median %v\n",
		runtime.NumCPU(), search.Summarize(parallel).Median, search.Summarize(single).Median)

	speedups, err := search.CompareRuntimes(parallel, single, []float64{0.1, 0.25, 0.5}, 10000, 0)
	if err != nil {
		panic(err)
	}
	for _, s := range speedups {
		fmt.Printf("Speedup ≥ %.0f%% → Confidence: %.4f\n", s.Threshold*100.0, s.Confidence)
	}
}
