// Package apps holds ready-made mappers and reducers
package apps

import (
	"strconv"
	"strings"

	"github.com/dreamware/mapreduce/pkg/kv"
	"github.com/dreamware/mapreduce/pkg/mapreduce"
)

// IdentityMapper emits every input record unchanged
var IdentityMapper = mapreduce.MapFunc(func(p kv.Pair, out *kv.List) {
	out.Append(p.Clone())
})

// IdentityReducer emits every record of the group unchanged
var IdentityReducer = mapreduce.ReduceFunc(func(_ string, group, out *kv.List) {
	out.Extend(group)
})

// WordCountMapper splits the value into whitespace separated tokens and
// emits (token, "1") for each occurrence.
var WordCountMapper = mapreduce.MapFunc(func(p kv.Pair, out *kv.List) {
	for _, word := range strings.Fields(string(p.Value)) {
		out.Append(kv.NewPair(word, "1"))
	}
})

// WordCountReducer sums the decimal values of the group and emits
// (key, sum). A value that is not an integer panics, aborting the run.
var WordCountReducer = mapreduce.ReduceFunc(func(key string, group, out *kv.List) {
	total := 0
	it := group.Iterator()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		n, err := strconv.Atoi(string(p.Value))
		if err != nil {
			panic(err)
		}
		total += n
	}
	out.Append(kv.NewPair(key, strconv.Itoa(total)))
})
