//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/kittclouds/postag/internal/store"
	"github.com/kittclouds/postag/pkg/config"
	"github.com/kittclouds/postag/pkg/tagger"
)

// Version info
const Version = "0.1.0"

// Global state
var tg *tagger.Tagger
var sqlStore *store.SQLiteStore // SQLite lexicon store

func main() {
	tg = tagger.New(tagger.Options{Config: config.Map{config.SectionVerbose: "0"}})

	fmt.Println("[postag] WASM Ready v" + Version)

	// Register exports
	js.Global().Set("PosTag", js.ValueOf(map[string]interface{}{
		"version":          js.FuncOf(getVersion),
		"initialize":       js.FuncOf(initialize),
		"getPos":           js.FuncOf(getPos),
		"getPosAll":        js.FuncOf(getPosAll),
		"loadLexicon":      js.FuncOf(loadLexicon),
		"loadRegexLexicon": js.FuncOf(loadRegexLexicon),
		"setVerbose":       js.FuncOf(setVerbose),
		"stats":            js.FuncOf(stats),
		// SQLite Store API
		"storeInit":   js.FuncOf(storeInit),
		"storeSave":   js.FuncOf(storeSave),
		"storeLoad":   js.FuncOf(storeLoad),
		"storeExport": js.FuncOf(storeExport),
		"storeImport": js.FuncOf(storeImport),
	}))

	select {}
}

// getVersion returns the module version
func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// initialize replaces the tagger with an empty one.
// Args: [configJSON string] - optional flat object of config sections,
// e.g. {"tagger":"0"}
func initialize(this js.Value, args []js.Value) interface{} {
	cfg := config.Map{config.SectionVerbose: "0"}
	if len(args) > 0 && args[0].String() != "" {
		var sections map[string]string
		if err := json.Unmarshal([]byte(args[0].String()), &sections); err != nil {
			return errorResult("invalid config json: " + err.Error())
		}
		for k, v := range sections {
			cfg[k] = v
		}
	}
	tg = tagger.New(tagger.Options{Config: cfg})
	return successResult("initialized")
}

// getPos resolves a single word.
// Args: [word string]
// Returns: {"type":..,"genus":..} JSON, {} when unresolved
func getPos(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("getPos requires 1 arg: word")
	}
	bytes, _ := json.Marshal(tg.GetPos(args[0].String()))
	return string(bytes)
}

// getPosAll resolves a batch of words.
// Args: [wordsJSON string] - JSON array of strings
// Returns: JSON array of tags aligned with the input
func getPosAll(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("getPosAll requires 1 arg: wordsJSON")
	}
	var words []string
	if err := json.Unmarshal([]byte(args[0].String()), &words); err != nil {
		return errorResult("invalid words json: " + err.Error())
	}
	bytes, _ := json.Marshal(tg.GetPosAll(words))
	return string(bytes)
}

// loadLexicon adds lexicon entries from the text of a lexicon file.
// Args: [text string]
func loadLexicon(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("loadLexicon requires 1 arg: text")
	}
	if err := tg.ReadLexicon(strings.NewReader(args[0].String())); err != nil {
		return errorResult("load lexicon: " + err.Error())
	}
	st := tg.Stats()
	fmt.Printf("[postag] Lexicon loaded: %d words\n", st.Words)
	return successResult(fmt.Sprintf("%d words", st.Words))
}

// loadRegexLexicon appends rules from the text of a regex lexicon file.
// Args: [text string]
func loadRegexLexicon(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("loadRegexLexicon requires 1 arg: text")
	}
	if err := tg.ReadRegexLexicon(strings.NewReader(args[0].String())); err != nil {
		return errorResult("load regex lexicon: " + err.Error())
	}
	st := tg.Stats()
	fmt.Printf("[postag] Regex lexicon loaded: %d rules\n", st.Rules)
	return successResult(fmt.Sprintf("%d rules", st.Rules))
}

// setVerbose toggles the resolution trace on the browser console.
// Args: [on bool]
func setVerbose(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("setVerbose requires 1 arg: on")
	}
	tg.SetVerbose(args[0].Truthy())
	return successResult("ok")
}

// stats reports what is loaded.
func stats(this js.Value, args []js.Value) interface{} {
	bytes, _ := json.Marshal(tg.Stats())
	return string(bytes)
}

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// =============================================================================
// SQLite Store API
// =============================================================================

// storeInit initializes the SQLite store.
// Args: [] (uses in-memory database for WASM)
func storeInit(this js.Value, args []js.Value) interface{} {
	var err error
	sqlStore, err = store.NewSQLiteStore()
	if err != nil {
		return errorResult("failed to initialize SQLite store: " + err.Error())
	}
	fmt.Println("[postag] SQLite Store initialized")
	return successResult("store initialized")
}

// storeSave replaces the store contents with the loaded lexicons.
// Args: []
func storeSave(this js.Value, args []js.Value) interface{} {
	if sqlStore == nil {
		return errorResult("store not initialized")
	}
	lex, rx := tg.Snapshot()
	if err := sqlStore.Replace(lex, rx); err != nil {
		return errorResult("save failed: " + err.Error())
	}
	return successResult(fmt.Sprintf("saved %d words, %d rules", lex.Len(), rx.Len()))
}

// storeLoad replays the stored lexicons into the tagger.
// Args: []
func storeLoad(this js.Value, args []js.Value) interface{} {
	if sqlStore == nil {
		return errorResult("store not initialized")
	}
	if err := tg.LoadSource(sqlStore); err != nil {
		return errorResult("load failed: " + err.Error())
	}
	st := tg.Stats()
	return successResult(fmt.Sprintf("%d words, %d rules", st.Words, st.Rules))
}

// storeExport serializes the store to a Uint8Array.
// Args: []
// Returns: Uint8Array of JSON bytes (for OPFS persistence)
func storeExport(this js.Value, args []js.Value) interface{} {
	if sqlStore == nil {
		return errorResult("store not initialized")
	}

	data, err := sqlStore.Export()
	if err != nil {
		return errorResult("export failed: " + err.Error())
	}

	// Create a Uint8Array in JS and copy bytes over
	jsArray := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(jsArray, data)

	fmt.Printf("[postag] Exported %d bytes\n", len(data))
	return jsArray
}

// storeImport restores the store from a Uint8Array.
// Args: [data Uint8Array]
func storeImport(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("storeImport requires 1 arg: data (Uint8Array)")
	}
	if sqlStore == nil {
		return errorResult("store not initialized")
	}

	jsArray := args[0]
	length := jsArray.Get("length").Int()
	data := make([]byte, length)
	js.CopyBytesToGo(data, jsArray)

	if err := sqlStore.Import(data); err != nil {
		return errorResult("import failed: " + err.Error())
	}

	fmt.Printf("[postag] Imported %d bytes\n", length)
	return successResult(fmt.Sprintf("imported %d bytes", length))
}
