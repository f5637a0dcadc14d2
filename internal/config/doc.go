// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

// Package config loads Skyguide configuration with Koanf v2.
//
// Sources are layered, later ones winning:
//
//  1. Built-in defaults (defaultConfig)
//  2. YAML file (CONFIG_PATH, or config.yaml / /etc/skyguide/config.yaml)
//  3. Environment variables, mapped explicitly in envTransformFunc
//
// A .env file in the working directory is loaded into the environment by
// cmd/server before Load runs.
//
// Example config.yaml:
//
//	server:
//	  port: 3857
//	database:
//	  driver: mysql
//	  dsn: "skyguide:secret@tcp(db:3306)/skyguide?parseTime=true"
//	layers:
//	  l2:
//	    min_rows: 300
//	    script: /opt/ml/Models/Layer_2/Scripts/Trend_Model.py
//	engine:
//	  path: /opt/engine/RecommendationEngine
//	  timeout: 60s
//
// Every layer threshold, script path and process deadline lives here so
// that operators can tune them without a rebuild.
package config
