// Package wordcount holds the word oriented streaming jobs: the unique word
// listing and the classic per-word count.
package wordcount

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/streaming"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/types"
)

// A token is a run of letters or a run of punctuation.
var tokenPattern = regexp.MustCompile(`[A-Za-z]+|[^A-Za-z\s]+`)

func Tokenize(line string) []string {
	return tokenPattern.FindAllString(line, -1)
}

// Map emits "token\t1" for every token of line.
func Map(line string) ([]types.KeyValue, error) {
	tokens := Tokenize(line)

	kvs := make([]types.KeyValue, 0, len(tokens))
	for _, tok := range tokens {
		kvs = append(kvs, types.KeyValue{Key: tok, Value: "1"})
	}

	return kvs, nil
}

// groups calls fn for every run of equal keys, in key order.
func groups(kvs []types.KeyValue, fn func(key string, values []string) error) error {
	sorted := make([]types.KeyValue, len(kvs))
	copy(sorted, kvs)
	sort.Sort(types.ByKey(sorted))

	i := 0
	for i < len(sorted) {
		j := i + 1
		for j < len(sorted) && sorted[j].Key == sorted[i].Key {
			j++
		}

		values := make([]string, 0, j-i)
		for k := i; k < j; k++ {
			values = append(values, sorted[k].Value)
		}

		if err := fn(sorted[i].Key, values); err != nil {
			return err
		}

		i = j
	}

	return nil
}

// CombineUnique keeps one "word\t1" pair per distinct word.
func CombineUnique(kvs []types.KeyValue) ([]types.KeyValue, error) {
	var out []types.KeyValue
	err := groups(kvs, func(key string, _ []string) error {
		out = append(out, types.KeyValue{Key: key, Value: "1"})
		return nil
	})
	return out, err
}

// ReduceUnique lists every distinct word once, sorted.
func ReduceUnique(kvs []types.KeyValue) ([]string, error) {
	var words []string
	err := groups(kvs, func(key string, _ []string) error {
		words = append(words, key)
		return nil
	})
	return words, err
}

func sum(key string, values []string) (int, error) {
	total := 0
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%w: count %q for %q", streaming.ErrMalformed, v, key)
		}
		total += n
	}
	return total, nil
}

// CheckCount rejects a pair whose value is not an integer count.
func CheckCount(kv types.KeyValue) error {
	_, err := sum(kv.Key, []string{kv.Value})
	return err
}

// CombineCount sums the partial counts of every word.
func CombineCount(kvs []types.KeyValue) ([]types.KeyValue, error) {
	var out []types.KeyValue
	err := groups(kvs, func(key string, values []string) error {
		n, err := sum(key, values)
		if err != nil {
			return err
		}
		out = append(out, types.KeyValue{Key: key, Value: strconv.Itoa(n)})
		return nil
	})
	return out, err
}

// ReduceCount emits "word count" lines in word order.
func ReduceCount(kvs []types.KeyValue) ([]string, error) {
	var lines []string
	err := groups(kvs, func(key string, values []string) error {
		n, err := sum(key, values)
		if err != nil {
			return err
		}
		lines = append(lines, fmt.Sprintf("%v %v", key, n))
		return nil
	})
	return lines, err
}

func UniqueJob() streaming.Job {
	return streaming.Job{
		Name:    "wordcount-unique",
		Map:     Map,
		Combine: CombineUnique,
		Reduce:  ReduceUnique,
	}
}

func CountJob() streaming.Job {
	return streaming.Job{
		Name:    "wordcount",
		Map:     Map,
		Combine: CombineCount,
		Reduce:  ReduceCount,
		Check:   CheckCount,
	}
}
