// Package pronom identifies file formats against the PRONOM registry by
// shelling out to an installed signature tool: siegfried (sf) when
// available, fido as fallback. The tool choice can be pinned with the
// PRONOM_BACKEND environment variable ("sf" or "fido").
package pronom

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/goccy/go-json"
)

// Format is one PRONOM registry entry.
type Format struct {
	// Name is the registry's format name, e.g. "Acrobat PDF/A - Portable
	// Document Format".
	Name string
	// PUID is the persistent unique identifier, e.g. "fmt/477".
	PUID string
}

// Result is the outcome of a detection run.
type Result struct {
	Format   Format
	Warnings []string
}

// backendEnv pins the detection tool; unset means sf-then-fido.
const backendEnv = "PRONOM_BACKEND"

// Detect identifies the file's format. It fails when no supported tool is
// installed or when the tool reports no PRONOM match.
func Detect(ctx context.Context, path string) (Result, error) {
	switch os.Getenv(backendEnv) {
	case "sf":
		return detectSiegfried(ctx, path)
	case "fido":
		return detectFido(ctx, path)
	case "":
	default:
		return Result{}, fmt.Errorf("unknown %s value %q", backendEnv, os.Getenv(backendEnv))
	}
	if _, err := exec.LookPath("sf"); err == nil {
		return detectSiegfried(ctx, path)
	}
	if _, err := exec.LookPath("fido"); err == nil {
		return detectFido(ctx, path)
	}
	return Result{}, fmt.Errorf("no PRONOM tool found: install siegfried (sf) or fido")
}

// sfReport mirrors the parts of siegfried's JSON output we consume.
type sfReport struct {
	Files []struct {
		Filename string `json:"filename"`
		Errors   string `json:"errors"`
		Matches  []struct {
			NS      string `json:"ns"`
			ID      string `json:"id"`
			Format  string `json:"format"`
			Warning string `json:"warning"`
		} `json:"matches"`
	} `json:"files"`
}

func detectSiegfried(ctx context.Context, path string) (Result, error) {
	out, err := runTool(ctx, "sf", "-json", "-sym", path)
	if err != nil {
		return Result{}, err
	}
	return parseSiegfried(out, path)
}

func parseSiegfried(out []byte, path string) (Result, error) {
	var rep sfReport
	if err := json.Unmarshal(out, &rep); err != nil {
		return Result{}, fmt.Errorf("sf output: %w", err)
	}
	if len(rep.Files) == 0 {
		return Result{}, fmt.Errorf("sf reported no files for %s", path)
	}
	f := rep.Files[0]
	if f.Errors != "" {
		return Result{}, fmt.Errorf("sf: %s", f.Errors)
	}
	var res Result
	for _, m := range f.Matches {
		if m.NS != "pronom" || m.ID == "UNKNOWN" {
			continue
		}
		if m.Warning != "" {
			res.Warnings = append(res.Warnings, m.Warning)
		}
		if res.Format.PUID == "" {
			res.Format = Format{Name: m.Format, PUID: m.ID}
		}
	}
	if res.Format.PUID == "" {
		return Result{}, fmt.Errorf("no PRONOM match for %s", path)
	}
	return res, nil
}

// fido CSV columns: status, time, puid, formatname, signaturename, size,
// filename, mimetype, matchtype.
func detectFido(ctx context.Context, path string) (Result, error) {
	out, err := runTool(ctx, "fido", "-q", path)
	if err != nil {
		return Result{}, err
	}
	return parseFido(out, path)
}

func parseFido(out []byte, path string) (Result, error) {
	r := csv.NewReader(bytes.NewReader(out))
	r.FieldsPerRecord = -1
	var res Result
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("fido output: %w", err)
		}
		if len(row) < 4 || row[0] != "OK" {
			continue
		}
		if res.Format.PUID == "" {
			res.Format = Format{Name: row[3], PUID: row[2]}
		}
		if len(row) >= 9 && row[8] == "extension" {
			res.Warnings = append(res.Warnings, "match on extension only")
		}
	}
	if res.Format.PUID == "" {
		return Result{}, fmt.Errorf("no PRONOM match for %s", path)
	}
	return res, nil
}

func runTool(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s: %s: %w", name, msg, err)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}
