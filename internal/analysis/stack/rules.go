package stack

// The rule tables are data, not branching logic: adding a technology means
// appending a record, never touching the matcher.

// FrameworkRules covers application frameworks across backend, frontend,
// and ML ecosystems.
var FrameworkRules = []Rule{
	{
		Name:         "Flask",
		Imports:      []string{"flask", "from flask"},
		Filenames:    []string{"app.py", "wsgi.py"},
		Dependencies: []string{"flask"},
	},
	{
		Name:         "Django",
		Imports:      []string{"django", "from django"},
		Filenames:    []string{"manage.py", "settings.py", "wsgi.py"},
		Dependencies: []string{"django"},
	},
	{
		Name:         "FastAPI",
		Imports:      []string{"fastapi", "from fastapi"},
		Dependencies: []string{"fastapi"},
	},
	{
		Name:         "Tornado",
		Imports:      []string{"tornado", "from tornado"},
		Dependencies: []string{"tornado"},
	},
	{
		Name:         "Express",
		Imports:      []string{"express", "require('express')", `require("express")`},
		Dependencies: []string{"express"},
	},
	{
		Name:         "NestJS",
		Imports:      []string{"@nestjs", "from '@nestjs"},
		Dependencies: []string{"@nestjs/core", "@nestjs/common"},
		Filenames:    []string{"nest-cli.json"},
	},
	{
		Name:         "Koa",
		Imports:      []string{"koa", "require('koa')", `require("koa")`},
		Dependencies: []string{"koa"},
	},
	{
		Name:         "Hapi",
		Imports:      []string{"@hapi/hapi", "require('@hapi/hapi')"},
		Dependencies: []string{"@hapi/hapi"},
	},
	{
		Name:         "React",
		Imports:      []string{"react", "from 'react'", `from "react"`},
		Dependencies: []string{"react", "react-dom"},
	},
	{
		Name:         "Next.js",
		Filenames:    []string{"next.config.js", "next.config.ts"},
		Dependencies: []string{"next"},
	},
	{
		Name:         "Vue",
		Imports:      []string{"vue", "from 'vue'", `from "vue"`},
		Dependencies: []string{"vue"},
		Filenames:    []string{"vue.config.js"},
	},
	{
		Name:         "Angular",
		Imports:      []string{"@angular", "from '@angular"},
		Dependencies: []string{"@angular/core"},
		Filenames:    []string{"angular.json"},
	},
	{
		Name:         "Svelte",
		Dependencies: []string{"svelte"},
		Filenames:    []string{"svelte.config.js"},
	},
	{
		Name:         "PyTorch",
		Imports:      []string{"torch", "import torch", "from torch"},
		Dependencies: []string{"torch", "pytorch"},
	},
	{
		Name:         "TensorFlow",
		Imports:      []string{"tensorflow", "import tensorflow", "from tensorflow"},
		Dependencies: []string{"tensorflow", "tensorflow-gpu"},
	},
	{
		Name:         "Scikit-learn",
		Imports:      []string{"sklearn", "from sklearn"},
		Dependencies: []string{"scikit-learn"},
	},
}

// DatabaseRules covers relational stores, document stores, caches and
// search indexes. Caches and search engines still count as data stores
// here; the flow synthesizer treats them as external services as well.
var DatabaseRules = []Rule{
	{
		Name:         "PostgreSQL",
		Imports:      []string{"psycopg2", "asyncpg", "pg"},
		Dependencies: []string{"psycopg2", "asyncpg", "pg"},
		Config:       []string{"postgres://", "postgresql://"},
	},
	{
		Name:         "MySQL",
		Imports:      []string{"mysql", "pymysql", "mysqlclient"},
		Dependencies: []string{"mysql", "pymysql", "mysql-connector"},
		Config:       []string{"mysql://"},
	},
	{
		Name:         "SQLite",
		Imports:      []string{"sqlite3", "import sqlite3"},
		Dependencies: []string{"sqlite3"},
		Extensions:   []string{".db", ".sqlite", ".sqlite3"},
	},
	{
		Name:         "MongoDB",
		Imports:      []string{"pymongo", "mongoose", "mongodb"},
		Dependencies: []string{"pymongo", "mongoose", "mongodb"},
		Config:       []string{"mongodb://"},
	},
	{
		Name:         "Redis",
		Imports:      []string{"redis", "import redis", "ioredis"},
		Dependencies: []string{"redis", "ioredis"},
		Config:       []string{"redis://"},
	},
	{
		Name:         "Elasticsearch",
		Imports:      []string{"elasticsearch", "from elasticsearch"},
		Dependencies: []string{"elasticsearch", "@elastic/elasticsearch"},
		Config:       []string{"elasticsearch://"},
	},
}

// InfrastructureRules covers container, orchestration, CI and IaC tooling.
// Kubernetes requires a manifest marker on top of the YAML extension: a
// plain YAML file says nothing about orchestration.
var InfrastructureRules = []Rule{
	{
		Name:      "Docker",
		Filenames: []string{"Dockerfile", "docker-compose.yml", "docker-compose.yaml", ".dockerignore"},
	},
	{
		Name:           "Kubernetes",
		Filenames:      []string{"k8s/", "kubernetes/", "deployment.yaml", "service.yaml"},
		Extensions:     []string{".yaml", ".yml"},
		ContentMarkers: []string{"kind: Deployment", "kind: Service", "apiVersion: apps/v1"},
	},
	{
		Name:      "GitHub Actions",
		Filenames: []string{".github/workflows/"},
	},
	{
		Name:      "GitLab CI",
		Filenames: []string{".gitlab-ci.yml"},
	},
	{
		Name:       "Terraform",
		Filenames:  []string{".tf"},
		Extensions: []string{".tf"},
	},
}
