// Bench is a benchmarking tool for measuring hamtrie insert throughput,
// search throughput, and memory usage on synthetic perceptual-hash
// workloads.
//
// Usage:
//
//	go run ./cmd/bench -hashes 1000000 -width 64 -maxdist 6
//
// Flags:
//
//	-hashes   Number of hashes to index (default: 1,000,000)
//	-width    Hash bit resolution, up to 128 (default: 64)
//	-near     Near-duplicates generated per base hash (default: 3)
//	-flip     Bits flipped per near-duplicate (default: 2)
//	-queries  Number of search queries (default: 100,000)
//	-maxdist  Maximum Hamming distance per query (default: 6)
//	-shards   Independent tree shards queried in parallel (default: 1)
//	-gen      Pattern generator: xxh3 or murmur3 (default: xxh3)
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"runtime/pprof"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/hashmatch/hamtrie"
)

// getMaxRSS returns the maximum resident set size in bytes.
// Uses getrusage(RUSAGE_SELF) which tracks peak RSS since process start.
func getMaxRSS() uint64 {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	// On macOS, MaxRss is in bytes. On Linux, it's in kilobytes.
	maxRSS := uint64(rusage.Maxrss)
	if runtime.GOOS == "linux" {
		maxRSS *= 1024
	}
	return maxRSS
}

// pattern is one hash value as two 64-bit halves, low half first.
type pattern [2]uint64

// generator produces the i-th base pattern of the dataset.
type generator func(i uint64) pattern

func newGenerator(name string, seed uint64) (generator, error) {
	switch name {
	case "xxh3":
		return func(i uint64) pattern {
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], i)
			h := xxh3.Hash128Seed(buf[:], seed)
			return pattern{h.Lo, h.Hi}
		}, nil
	case "murmur3":
		return func(i uint64) pattern {
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], i)
			lo, hi := murmur3.Sum128WithSeed(buf[:], uint32(seed))
			return pattern{lo, hi}
		}, nil
	default:
		return nil, fmt.Errorf("unknown generator %q (want xxh3 or murmur3)", name)
	}
}

func (p pattern) mask(width int) pattern {
	if width <= 64 {
		if width < 64 {
			p[0] &= 1<<width - 1
		}
		p[1] = 0
		return p
	}
	if width < 128 {
		p[1] &= 1<<(width-64) - 1
	}
	return p
}

func (p pattern) flip(bit int) pattern {
	p[bit/64] ^= 1 << (bit % 64)
	return p
}

func (p pattern) toHash(width int, algo hamtrie.AlgorithmID) (hamtrie.Hash, error) {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], p[1])
	binary.BigEndian.PutUint64(buf[8:16], p[0])
	return hamtrie.FromBytes(buf[:], width, algo)
}

func main() {
	hashesFlag := flag.Int("hashes", 1_000_000, "number of hashes to index")
	widthFlag := flag.Int("width", 64, "hash bit resolution (1-128)")
	nearFlag := flag.Int("near", 3, "near-duplicates per base hash")
	flipFlag := flag.Int("flip", 2, "bits flipped per near-duplicate")
	queriesFlag := flag.Int("queries", 100_000, "number of search queries")
	maxDistFlag := flag.Int("maxdist", 6, "maximum Hamming distance per query")
	shardsFlag := flag.Int("shards", 1, "independent tree shards queried in parallel")
	genFlag := flag.String("gen", "xxh3", "pattern generator: xxh3 or murmur3")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file (search phase only)")
	flag.Parse()

	width := *widthFlag
	if width < 1 || width > 128 {
		fmt.Fprintf(os.Stderr, "width %d out of range [1, 128]\n", width)
		os.Exit(1)
	}
	shards := *shardsFlag
	if shards < 1 {
		shards = 1
	}

	gen, err := newGenerator(*genFlag, 0x1234)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	algo := hamtrie.DeriveAlgorithmID(*genFlag, width)

	fmt.Println("Generating patterns...")
	genStart := time.Now()
	rng := rand.New(rand.NewPCG(0xBE1, 0xBE2))
	numBases := *hashesFlag / (1 + *nearFlag)
	if numBases < 1 {
		numBases = 1
	}
	patterns := make([]pattern, 0, numBases*(1+*nearFlag))
	for i := 0; i < numBases; i++ {
		base := gen(uint64(i)).mask(width)
		patterns = append(patterns, base)
		p := base
		for n := 0; n < *nearFlag; n++ {
			for f := 0; f < *flipFlag; f++ {
				p = p.flip(rng.IntN(width))
			}
			patterns = append(patterns, p)
		}
	}
	genDuration := time.Since(genStart)

	fmt.Println("Inserting...")
	insertStart := time.Now()
	trees := make([]*hamtrie.Tree[uint64], shards)
	var ig errgroup.Group
	for s := 0; s < shards; s++ {
		ig.Go(func() error {
			tree := hamtrie.NewTree[uint64](hamtrie.WithAlgorithmConsistency())
			for i := s; i < len(patterns); i += shards {
				h, err := patterns[i].toHash(width, algo)
				if err != nil {
					return err
				}
				if err := tree.Insert(h, uint64(i)); err != nil {
					return err
				}
			}
			trees[s] = tree
			return nil
		})
	}
	if err := ig.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	insertDuration := time.Since(insertStart)

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	fmt.Println("Searching...")
	var totalResults atomic.Uint64
	searchStart := time.Now()
	var sg errgroup.Group
	// One goroutine per shard; a tree is never touched by two goroutines.
	for s := 0; s < shards; s++ {
		shard := s
		sg.Go(func() error {
			tree := trees[shard]
			qrng := rand.New(rand.NewPCG(0xC0FFEE, uint64(shard)))
			var found uint64
			for q := 0; q < *queriesFlag/shards; q++ {
				p := patterns[qrng.IntN(len(patterns))].flip(qrng.IntN(width))
				h, err := p.toHash(width, algo)
				if err != nil {
					return err
				}
				results, err := tree.Search(h, *maxDistFlag)
				if err != nil {
					return err
				}
				found += uint64(len(results))
			}
			totalResults.Add(found)
			return nil
		})
	}
	if err := sg.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	searchDuration := time.Since(searchStart)

	queries := *queriesFlag / shards * shards
	fmt.Println()
	fmt.Printf("Hashes:            %d (width %d, generator %s, %d shards)\n",
		len(patterns), width, *genFlag, shards)
	fmt.Printf("Generate:          %v\n", genDuration)
	fmt.Printf("Insert:            %v (%.0f hashes/sec)\n",
		insertDuration, float64(len(patterns))/insertDuration.Seconds())
	fmt.Printf("Search:            %v (%.0f queries/sec, maxdist %d)\n",
		searchDuration, float64(queries)/searchDuration.Seconds(), *maxDistFlag)
	fmt.Printf("Matches:           %d (%.2f per query)\n",
		totalResults.Load(), float64(totalResults.Load())/float64(queries))
	fmt.Printf("Peak RSS:          %.1f MiB\n", float64(getMaxRSS())/(1<<20))
}
