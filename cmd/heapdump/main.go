// Command heapdump runs a scripted trace of allocator operations and prints
// a summary of the resulting heap: live and free block and byte counts, and
// how many free blocks sit in each segregated bucket (with -verify it also
// checks the heap's invariants after every trace line).
//
// Each line of the trace is one of:
//
//	alloc <id> <size>
//	free <id>
//	realloc <id> <size>
//
// <id> is a label the script assigns on alloc and reuses on free/realloc; it
// has nothing to do with the allocator's own payload addresses.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/heapalloc/heapalloc"
	"github.com/heapalloc/heapalloc/arena"
)

var verify = flag.Bool("verify", false, "check heap invariants after every trace line")

func main() {
	flag.Parse()
	log.SetFlags(0)

	in := os.Stdin
	if args := flag.Args(); len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("heapdump: %v", err)
		}
		defer f.Close()
		in = f
	}

	h, err := heapalloc.NewHeap(arena.NewBytes())
	if err != nil {
		log.Fatalf("heapdump: %v", err)
	}

	if err := run(h, in); err != nil {
		log.Fatalf("heapdump: %v", err)
	}
	dump(h)
}

func run(h *heapalloc.Heap, in *os.File) error {
	ptrs := map[string]int{}
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := exec(h, ptrs, fields); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if *verify {
			if err := h.Check(); err != nil {
				return fmt.Errorf("line %d: invariant check failed: %w", line, err)
			}
		}
	}
	return scanner.Err()
}

func exec(h *heapalloc.Heap, ptrs map[string]int, fields []string) error {
	switch fields[0] {
	case "alloc":
		if len(fields) != 3 {
			return fmt.Errorf("alloc wants <id> <size>, got %v", fields[1:])
		}
		size, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		p, err := h.Allocate(size)
		if err != nil {
			return err
		}
		ptrs[fields[1]] = p
	case "free":
		if len(fields) != 2 {
			return fmt.Errorf("free wants <id>, got %v", fields[1:])
		}
		p, ok := ptrs[fields[1]]
		if !ok {
			return fmt.Errorf("free: unknown id %q", fields[1])
		}
		h.Free(p)
		delete(ptrs, fields[1])
	case "realloc":
		if len(fields) != 3 {
			return fmt.Errorf("realloc wants <id> <size>, got %v", fields[1:])
		}
		p, ok := ptrs[fields[1]]
		if !ok {
			return fmt.Errorf("realloc: unknown id %q", fields[1])
		}
		size, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		np, err := h.Reallocate(p, size)
		if err != nil {
			return err
		}
		if np == 0 {
			delete(ptrs, fields[1])
		} else {
			ptrs[fields[1]] = np
		}
	default:
		return fmt.Errorf("unknown op %q", fields[0])
	}
	return nil
}

func dump(h *heapalloc.Heap) {
	stats := h.Stats()
	fmt.Printf("live: %d blocks, %d bytes\n", stats.LiveBlocks, stats.LiveBytes)
	fmt.Printf("free: %d blocks, %d bytes (fragmentation %.2f)\n", stats.FreeBlocks, stats.FreeBytes, stats.Fragmentation())
	for i, n := range stats.Buckets {
		if n > 0 {
			fmt.Printf("  bucket %2d: %d free blocks\n", i, n)
		}
	}
}
