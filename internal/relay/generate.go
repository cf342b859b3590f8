package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type generateRequest struct {
	Prompt           string         `json:"prompt"`
	CharacterName    string         `json:"characterName"`
	AdditionalParams map[string]any `json:"additionalParams"`
	UserID           string         `json:"userId"`
}

// scriptResult is what the generation script prints as its last stdout line
// on success.
type scriptResult struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
}

// GenerateOutfit runs the generation script with the request parameters and
// relays its result.
//
// The parameters are handed to the script through a temporary JSON file
// rather than argv, so prompts can be arbitrary text. The script's last
// stdout line is parsed as JSON when it looks like JSON; the full stdout is
// returned either way.
func (s *Server) GenerateOutfit(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid JSON body",
		})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "prompt is required",
		})
		return
	}

	paramsFile, err := s.writeParamsFile(req)
	if err != nil {
		s.log.Error(r.Context(), "could not write params file", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "internal error",
		})
		return
	}
	defer os.Remove(paramsFile)

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.GenerateTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.cfg.PythonBin, s.cfg.GenerateScript, paramsFile)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		s.metrics.ObserveGeneration("timeout")
		s.log.Warn(r.Context(), "generation timed out", "timeout", s.cfg.GenerateTimeout)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "generation timed out",
		})
		return
	}
	if err != nil {
		s.metrics.ObserveGeneration("failure")
		s.log.Error(r.Context(), "generation script failed",
			"error", err, "stderr", stderr.String())
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "generation failed",
			"details": stderr.String(),
		})
		return
	}

	s.metrics.ObserveGeneration("success")

	resp := map[string]any{
		"success": true,
		"output":  stdout.String(),
	}
	if res := parseLastLine(stdout.String()); res != nil {
		resp["message"] = res.Message
		resp["imageUrl"] = res.ImageURL
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeParamsFile(req generateRequest) (string, error) {
	f, err := os.CreateTemp("", "dressup-params-*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(req); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return filepath.Clean(f.Name()), nil
}

// parseLastLine parses the last non-empty stdout line as a scriptResult when
// it looks like a JSON object; otherwise it returns nil.
func parseLastLine(out string) *scriptResult {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 {
		return nil
	}
	last := strings.TrimSpace(lines[len(lines)-1])
	if !strings.HasPrefix(last, "{") {
		return nil
	}
	var res scriptResult
	if err := json.Unmarshal([]byte(last), &res); err != nil {
		return nil
	}
	return &res
}
