package mapreduce_test

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dreamware/mapreduce/pkg/kv"
	"github.com/dreamware/mapreduce/pkg/mapreduce"
)

// ExampleRun demonstrates a word count over two documents
func ExampleRun() {
	mapper := mapreduce.MapFunc(func(p kv.Pair, out *kv.List) {
		for _, w := range strings.Fields(strings.ToLower(p.String())) {
			out.Append(kv.NewPair(w, "1"))
		}
	})
	reducer := mapreduce.ReduceFunc(func(key string, group, out *kv.List) {
		out.Append(kv.NewPair(key, strconv.Itoa(group.Len())))
	})

	input := kv.NewList(
		kv.NewPair("doc1", "to be or not to be"),
		kv.NewPair("doc2", "To be"),
	)
	output := kv.NewList()
	if err := mapreduce.Run(mapper, 2, reducer, 3, input, output); err != nil {
		fmt.Println(err)
		return
	}

	// Output is in bucket order; sort for a stable listing
	pairs := output.Pairs()
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	for _, p := range pairs {
		fmt.Printf("%s %s\n", p.Key, p.Value)
	}
	// Output:
	// be 3
	// not 1
	// or 1
	// to 3
}
