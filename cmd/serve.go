package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/upbeat/constants"
	"github.com/jsphweid/upbeat/logger"
	"github.com/jsphweid/upbeat/model"
	"github.com/jsphweid/upbeat/pattern"
	"github.com/jsphweid/upbeat/util"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var port int

type servedChart struct {
	id      string
	pattern *pattern.Pattern

	mu          sync.Mutex
	judged      int
	matched     int
	byDirection map[model.Direction]int
	summarize   func(func())
}

var served *servedChart

func init() {
	serveCmd.Flags().IntVar(&port, "port", constants.GetPort(), "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [midi file]",
	Short: "Serves a chart over http",
	Long:  `Serves the pattern of a chart and judges inputs posted by a remote frontend.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := constants.GetMidiPath()
		if len(args) > 0 {
			path = args[0]
		}
		if err := LoadServeChart(path); err != nil {
			return err
		}
		logger.Log.Infof("serving chart %s as %s on :%d", path, served.id, port)
		return http.ListenAndServe(fmt.Sprintf(":%d", port), Router())
	},
}

// LoadServeChart extracts the chart that the handlers answer for.
func LoadServeChart(path string) error {
	p, err := loadChart(path)
	if err != nil {
		return err
	}
	served = &servedChart{
		id:          uuid.New().String(),
		pattern:     p,
		byDirection: map[model.Direction]int{},
		summarize:   debounce.New(500 * time.Millisecond),
	}
	return nil
}

func Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/pattern", HandlePattern).Methods("GET")
	router.HandleFunc("/judge", HandleJudge).Methods("POST")
	return cors.Default().Handler(router)
}

func writeError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorf("could not encode response: %v", err)
	}
}

func HandlePattern(w http.ResponseWriter, r *http.Request) {
	if served == nil {
		writeError(w, "no chart loaded", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, model.PatternResponse{
		ChartId: served.id,
		Tempo:   served.pattern.Tempo,
		Notes:   served.pattern.Notes,
	})
}

func HandleJudge(w http.ResponseWriter, r *http.Request) {
	if served == nil {
		writeError(w, "no chart loaded", http.StatusServiceUnavailable)
		return
	}

	var input model.JudgeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, "could not decode request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	nav, ok := model.ParseNavDirection(input.Direction)
	if !ok {
		writeError(w, fmt.Sprintf("unknown direction %q", input.Direction), http.StatusBadRequest)
		return
	}

	in := model.NewDirectionalInput(nav, input.TimestampMs)
	res, ok := judgeInput(served.pattern, in)
	if !ok {
		writeError(w, "no note near the input", http.StatusNotFound)
		return
	}
	served.record(in, res)
	writeJSON(w, model.JudgeResponse{ChartId: served.id, Result: res})
}

func (c *servedChart) record(in model.DirectionalInput, res model.JudgmentResult) {
	c.mu.Lock()
	c.judged++
	c.byDirection[in.Direction]++
	if res.DirectionOK {
		c.matched++
	}
	c.mu.Unlock()
	c.summarize(c.logSummary)
}

func (c *servedChart) summary() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var parts []string
	for _, dir := range util.GetKeys(c.byDirection) {
		parts = append(parts, fmt.Sprintf("%v=%d", dir, c.byDirection[dir]))
	}
	return fmt.Sprintf("%d of %d inputs matched direction (%s)", c.matched, c.judged, strings.Join(parts, " "))
}

func (c *servedChart) logSummary() {
	logger.Log.Infof("chart %s: %s", c.id, c.summary())
}
