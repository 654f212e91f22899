// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tilemm multiplies two seeded integer-valued matrices with the tiled
// kernel and checks the result against a gonum reference product.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/LynnColeArt/tilemm"
)

type config struct {
	m, n, k  int
	seed     uint64
	dtype    string
	schedule string
	workers  int
	tol      tilemm.ToleranceConfig
	verbose  bool
}

func main() {
	var (
		m        = flag.Int("m", 16, "Rows of A and C")
		n        = flag.Int("n", 31, "Columns of B and C")
		k        = flag.Int("k", 16, "Columns of A, rows of B")
		seed     = flag.Uint64("seed", 0, "Seed for the input generator")
		dtype    = flag.String("dtype", "f16", "Element type: f16 or f32")
		schedule = flag.String("schedule", "parallel", "Launch schedule: parallel, sequential or shuffled")
		workers  = flag.Int("workers", 0, "Worker goroutines (0 = GOMAXPROCS)")
		rtol     = flag.Float64("rtol", -1, "Relative tolerance (negative = dtype default)")
		atol     = flag.Float64("atol", -1, "Absolute tolerance (negative = dtype default)")
		verbose  = flag.Bool("v", false, "Verbose output")
		version  = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("tilemm: ")

	if *version {
		v, _ := tilemm.Version()
		if v == "" {
			v = "(devel)"
		}
		fmt.Println("tilemm", v)
		return
	}

	cfg := config{
		m: *m, n: *n, k: *k,
		seed:     *seed,
		dtype:    *dtype,
		schedule: *schedule,
		workers:  *workers,
		tol:      toleranceFor(*dtype, *atol, *rtol),
		verbose:  *verbose,
	}

	var (
		passed bool
		err    error
	)
	switch cfg.dtype {
	case "f16", "float16", "half":
		passed, err = run[tilemm.Float16](cfg)
	case "f32", "float32":
		passed, err = run[float32](cfg)
	default:
		log.Fatalf("unknown dtype %q", cfg.dtype)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
	if !passed {
		fmt.Println("FAIL: kernel and reference differ")
		os.Exit(1)
	}
	fmt.Println("PASS: kernel and reference match")
}

// toleranceFor returns the default tolerance of dtype, overridden by any
// non-negative atol or rtol.
func toleranceFor(dtype string, atol, rtol float64) tilemm.ToleranceConfig {
	tol := tilemm.HalfTolerance()
	switch dtype {
	case "f32", "float32":
		tol = tilemm.DefaultTolerance()
	}
	if atol >= 0 {
		tol.AbsTol = atol
	}
	if rtol >= 0 {
		tol.RelTol = rtol
	}
	return tol
}

func run[T tilemm.Element](cfg config) (bool, error) {
	p := message.NewPrinter(language.English)

	sched, err := tilemm.ParseSchedule(cfg.schedule)
	if err != nil {
		return false, err
	}
	ctx, err := tilemm.NewContext(tilemm.WithWorkers(cfg.workers), tilemm.WithSchedule(sched))
	if err != nil {
		return false, err
	}

	a := tilemm.RandomMatrix[T](cfg.m, cfg.k, cfg.seed)
	b := tilemm.RandomMatrix[T](cfg.k, cfg.n, cfg.seed+1)

	if cfg.verbose {
		p.Printf("Device: %s\n", ctx.Device())
		p.Printf("A: %v\nB: %v\n", a, b)
		p.Printf("Grid: %d tiles of %dx%d, %d workers, %s schedule\n",
			tilemm.Grid(cfg.m, cfg.n).Size(), tilemm.BlockM, tilemm.BlockN, ctx.Workers(), ctx.Schedule())
	}

	start := time.Now()
	c, err := tilemm.MatMulContext(ctx, a, b)
	if err != nil {
		return false, fmt.Errorf("matmul: %w", err)
	}
	elapsed := time.Since(start)

	want, err := tilemm.GonumReference(a, b)
	if err != nil {
		return false, fmt.Errorf("reference: %w", err)
	}
	res := tilemm.VerifyMatrix(want, c, cfg.tol)

	if cfg.verbose {
		flops := 2 * float64(cfg.m) * float64(cfg.n) * float64(cfg.k)
		p.Printf("Computed %d elements in %v (%.3f GFLOPS)\n",
			cfg.m*cfg.n, elapsed, flops/elapsed.Seconds()/1e9)
		p.Printf("%s\n", res)
	}
	return res.Passed(), nil
}
