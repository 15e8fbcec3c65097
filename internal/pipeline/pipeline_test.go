package pipeline

import (
	"context"
	"reflect"
	"testing"

	"github.com/repolens/repolens/internal/analysis"
	"github.com/repolens/repolens/internal/flow"
	"github.com/repolens/repolens/internal/metrics"
)

// flaskRecords model a small Flask application with a React client.
func flaskRecords() []analysis.FileRecord {
	return []analysis.FileRecord{
		{Path: "app.py", Content: "from flask import Flask\nimport helpers\napp = Flask(__name__)\n\n@app.route('/')\ndef index():\n    return 'ok'\n"},
		{Path: "helpers.py", Content: "import sqlite3\n\ndef connect():\n    return sqlite3.connect('app.db')\n"},
		{Path: "frontend/index.js", Content: "import React from 'react'\n"},
		{Path: "backend/routes.py", Content: "import helpers\n"},
		{Path: "requirements.txt", Content: "flask==3.0\n"},
		{Path: "Dockerfile", Content: "FROM python:3.11\nCMD [\"python\", \"app.py\"]\n"},
	}
}

func TestAnalyze_FlaskApplication(t *testing.T) {
	a := NewAnalyzer(Options{})
	res := a.Analyze(context.Background(), flaskRecords())

	if res.Languages.Primary != "Python" {
		t.Errorf("expected primary Python, got %s", res.Languages.Primary)
	}

	hasFramework := func(name string) bool {
		for _, f := range res.Frameworks {
			if f == name {
				return true
			}
		}
		return false
	}
	if !hasFramework("Flask") || !hasFramework("React") {
		t.Errorf("expected Flask and React, got %v", res.Frameworks)
	}
	if !reflect.DeepEqual(res.Databases, []string{"SQLite"}) {
		t.Errorf("expected [SQLite], got %v", res.Databases)
	}
	if !reflect.DeepEqual(res.Infrastructure, []string{"Docker"}) {
		t.Errorf("expected [Docker], got %v", res.Infrastructure)
	}

	if res.Folders["frontend"].Role != "frontend" {
		t.Errorf("expected frontend folder, got %+v", res.Folders["frontend"])
	}
	if res.Folders["backend"].Role != "backend" {
		t.Errorf("expected backend folder, got %+v", res.Folders["backend"])
	}

	if len(res.EntryPoints.ApplicationFiles) == 0 {
		t.Error("expected app.py as application file")
	}
	if len(res.EntryPoints.DockerEntries) != 1 {
		t.Errorf("expected one docker entry, got %v", res.EntryPoints.DockerEntries)
	}

	if got := res.Graph.Edges["app.py"]; !reflect.DeepEqual(got, []string{"helpers.py"}) {
		t.Errorf("expected app.py -> helpers.py, got %v", got)
	}

	if !res.Flow.HasStage(flow.StageEntry) || !res.Flow.HasStage(flow.StageBackend) {
		t.Errorf("expected entry and backend stages, got %+v", res.Flow.Stages)
	}
}

func TestAnalyze_SkipsInvalidRecords(t *testing.T) {
	records := []analysis.FileRecord{
		{Path: "", Content: "lost"},
		{Path: "main.go", Content: "package main\n"},
	}

	a := NewAnalyzer(Options{})
	res := a.Analyze(context.Background(), records)

	if res.SkippedRecords != 1 {
		t.Errorf("expected 1 skipped record, got %d", res.SkippedRecords)
	}
	if res.Languages.TotalFiles != 1 {
		t.Errorf("expected 1 classified file, got %d", res.Languages.TotalFiles)
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	a := NewAnalyzer(Options{})
	res := a.Analyze(context.Background(), nil)

	if res.Languages.TotalFiles != 0 {
		t.Errorf("expected no files, got %d", res.Languages.TotalFiles)
	}
	if len(res.Frameworks) != 0 || len(res.Databases) != 0 || len(res.Infrastructure) != 0 {
		t.Error("expected empty stack detection")
	}
	if len(res.Flow.Stages) != 0 {
		t.Errorf("expected empty flow, got %+v", res.Flow.Stages)
	}
}

func TestAnalyze_OrderIndependentDetectors(t *testing.T) {
	records := flaskRecords()
	reversed := make([]analysis.FileRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}

	a := NewAnalyzer(Options{})
	res1 := a.Analyze(context.Background(), records)
	res2 := a.Analyze(context.Background(), reversed)

	if !reflect.DeepEqual(res1.Frameworks, res2.Frameworks) {
		t.Errorf("frameworks differ: %v vs %v", res1.Frameworks, res2.Frameworks)
	}
	if !reflect.DeepEqual(res1.Folders, res2.Folders) {
		t.Errorf("folders differ: %v vs %v", res1.Folders, res2.Folders)
	}
	if !reflect.DeepEqual(res1.Graph.Nodes, res2.Graph.Nodes) {
		t.Errorf("graph nodes differ: %v vs %v", res1.Graph.Nodes, res2.Graph.Nodes)
	}
}

func TestAnalyze_PopulatesMetrics(t *testing.T) {
	m := metrics.New()
	a := NewAnalyzer(Options{Metrics: m})
	a.Analyze(context.Background(), flaskRecords())

	if m.Files != 6 {
		t.Errorf("expected 6 files, got %d", m.Files)
	}
	if m.PrimaryLanguage != "Python" {
		t.Errorf("expected Python, got %s", m.PrimaryLanguage)
	}
	if len(m.Phases) != 6 {
		t.Errorf("expected 6 phases, got %d", len(m.Phases))
	}
	if m.GraphNodes == 0 {
		t.Error("expected graph nodes recorded")
	}
}
