//go:build js && wasm
// +build js,wasm

package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"syscall/js"

	"github.com/MeKo-Tech/huequiz/internal/colormodel"
	"github.com/MeKo-Tech/huequiz/internal/options"
)

// QuestionRequest asks for one question from JavaScript.
type QuestionRequest struct {
	Difficulty    int    `json:"difficulty"`
	MaxDifficulty int    `json:"max_difficulty"`
	Seed          uint64 `json:"seed"`
}

type ColorResponse struct {
	Hex string `json:"hex"`
	RGB string `json:"rgb"`
	HSL string `json:"hsl"`
}

type QuestionResponse struct {
	Answer          ColorResponse `json:"answer"`
	CorrectPosition int           `json:"correct_position"`
	Options         []string      `json:"options"`
}

func newColorResponse(c colormodel.Color) ColorResponse {
	return ColorResponse{Hex: c.HexString(), RGB: c.RGBString(), HSL: c.HSLString()}
}

func errorResult(err error) map[string]any {
	return map[string]any{"error": err.Error()}
}

func encode(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return errorResult(err)
	}
	return string(b)
}

// convert takes any color string and returns its three representations as JSON.
func convert(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "missing arguments"}
	}

	c, err := colormodel.Parse(args[0].String())
	if err != nil {
		return errorResult(err)
	}
	return encode(newColorResponse(c))
}

// question draws one question. The request is optional JSON; a zero seed
// picks a random one.
func question(this js.Value, args []js.Value) any {
	req := QuestionRequest{Difficulty: 5, MaxDifficulty: 10}
	if len(args) > 0 && args[0].Type() == js.TypeString {
		if err := json.Unmarshal([]byte(args[0].String()), &req); err != nil {
			return errorResult(fmt.Errorf("failed to parse request: %w", err))
		}
	}
	if req.Seed == 0 {
		req.Seed = rand.Uint64()
	}

	difRange, err := options.DifficultyRange(req.Difficulty, req.MaxDifficulty)
	if err != nil {
		return errorResult(err)
	}
	q, err := options.NewGenerator(options.NewSource(req.Seed)).Next(difRange)
	if err != nil {
		return errorResult(err)
	}

	resp := QuestionResponse{
		Answer:          newColorResponse(q.Answer),
		CorrectPosition: q.CorrectPosition,
		Options:         make([]string, len(q.Options)),
	}
	for i, c := range q.Options {
		resp.Options[i] = c.HexString()
	}
	return encode(resp)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("huequizConvert", js.FuncOf(convert))
	js.Global().Set("huequizQuestion", js.FuncOf(question))

	fmt.Println("huequiz WASM module loaded")
	<-c
}
