// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestBindFlagsAllTypes(t *testing.T) {
	type params struct {
		Name    string        `flag:"name,n" desc:"a name" default:"anonymous"`
		Verbose bool          `flag:"verbose,v"`
		Count   int           `flag:"count" default:"10"`
		Wait    time.Duration `flag:"wait" default:"5s"`
		Tags    []string      `flag:"tags" default:"a,b"`
		Skipped string        // No flag tag: not bound.
	}

	var p params
	flagSet := FlagsFromParams("test", &p)

	if err := flagSet.Parse([]string{"-n", "ada", "-v", "--count", "3", "--wait", "1m", "--tags", "x,y"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Name != "ada" || !p.Verbose || p.Count != 3 || p.Wait != time.Minute {
		t.Errorf("params = %+v", p)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "x" {
		t.Errorf("tags = %v", p.Tags)
	}
	if flagSet.Lookup("skipped") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlagsDefaults(t *testing.T) {
	type params struct {
		Name  string        `flag:"name" default:"anonymous"`
		Count int           `flag:"count" default:"10"`
		Wait  time.Duration `flag:"wait" default:"5s"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Name != "anonymous" || p.Count != 10 || p.Wait != 5*time.Second {
		t.Errorf("defaults = %+v", p)
	}
}

func TestBindFlagsEmbeddedStruct(t *testing.T) {
	type params struct {
		JSONOutput
		Status string `flag:"status"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse([]string{"--json", "--status", "COMPLETED"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.OutputJSON {
		t.Error("embedded --json not bound")
	}
	if p.Status != "COMPLETED" {
		t.Errorf("status = %q", p.Status)
	}
}

func TestBindFlagsRejectsBadInput(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags("not a struct pointer", flagSet); err == nil {
		t.Error("non-pointer accepted")
	}

	type badType struct {
		F float64 `flag:"f"`
	}
	var bad badType
	if err := BindFlags(&bad, flagSet); err == nil {
		t.Error("unsupported field type accepted")
	}
}

func TestBindFlagsBadDefault(t *testing.T) {
	type params struct {
		Count int `flag:"count" default:"ten"`
	}
	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err == nil {
		t.Error("unparseable default accepted")
	}
}
