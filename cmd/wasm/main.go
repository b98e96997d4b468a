//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"strings"
	"syscall/js"

	"go.uber.org/zap"

	"staffq/internal/adapter/embedding"
	"staffq/internal/adapter/memstore"
	"staffq/internal/corpus"
	"staffq/internal/port"
	"staffq/internal/prompt"
	"staffq/internal/usecase"
)

// Browser build: the whole pipeline runs in-page with the local embedder, so
// answering a staffing query needs no server and no API key. Generation is
// off; every answer comes from the template path.
var (
	loader    *corpus.Loader
	embedder  port.Embedder
	directory *corpus.Directory
	answer    *usecase.AnswerUseCase
)

func init() {
	loader = corpus.NewLoader(zap.NewNop())
	embedder, _ = embedding.NewLocalEmbedder(0, true)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("staffqLoad", js.FuncOf(loadCorpus))
	js.Global().Set("staffqAsk", js.FuncOf(askQuery))
	js.Global().Set("staffqSearch", js.FuncOf(searchEmployees))
	js.Global().Set("staffqStats", js.FuncOf(getStats))

	<-c
}

func loadCorpus(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: staffqLoad(corpusJSON)")
	}

	dir, err := loader.Parse([]byte(args[0].String()))
	if err != nil {
		return makeError("corpus rejected: " + err.Error())
	}
	if dir.Count() == 0 {
		return makeError("corpus holds no usable employee records")
	}

	store := memstore.NewMemoryStore()
	result, err := usecase.NewEncodeUseCase(embedder, store, zap.NewNop()).
		Encode(context.Background(), dir.All(), nil)
	if err != nil {
		return makeError("encoding failed: " + err.Error())
	}

	prompts, err := prompt.NewBuilder()
	if err != nil {
		return makeError("templates unavailable: " + err.Error())
	}

	retriever := usecase.NewRetrieveUseCase(embedder, store, dir, 5, 0.1, zap.NewNop())
	directory = dir
	answer = usecase.NewAnswerUseCase(retriever, nil, prompts, usecase.GenerationOptions{}, zap.NewNop())

	return makeResult(map[string]interface{}{
		"success":   true,
		"employees": dir.Count(),
		"encoded":   result.Encoded,
		"skipped":   result.Skipped,
	})
}

func askQuery(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: staffqAsk(query)")
	}
	if answer == nil {
		return makeError("no corpus loaded, call staffqLoad first")
	}

	ans := answer.Answer(context.Background(), args[0].String())
	out, err := json.Marshal(usecase.NewAnswerResponse(ans))
	if err != nil {
		return makeError("marshal failed: " + err.Error())
	}
	return string(out)
}

func searchEmployees(this js.Value, args []js.Value) interface{} {
	if directory == nil {
		return makeError("no corpus loaded, call staffqLoad first")
	}

	var filter corpus.Filter
	if len(args) > 0 && args[0].String() != "" {
		filter.Skills = strings.Split(args[0].String(), ",")
	}
	if len(args) > 1 {
		filter.MinExperience = args[1].Int()
	}
	if len(args) > 2 {
		filter.Availability = args[2].String()
	}
	if len(args) > 3 {
		filter.Department = args[3].String()
	}

	matches := directory.Search(filter)
	out, err := json.Marshal(map[string]interface{}{
		"employees": matches,
		"count":     len(matches),
	})
	if err != nil {
		return makeError("marshal failed: " + err.Error())
	}
	return string(out)
}

func getStats(this js.Value, args []js.Value) interface{} {
	loaded := 0
	if directory != nil {
		loaded = directory.Count()
	}
	return makeResult(map[string]interface{}{
		"employees": loaded,
		"model":     embedder.ModelName(),
		"dimension": embedder.Dimension(),
	})
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
