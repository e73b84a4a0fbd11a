// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the TaskFlow
// client.
//
// Configuration is optional: the defaults talk to a local development
// API server. When a config file is wanted, it is specified by the
// TASKFLOW_CONFIG environment variable or the --config flag — there
// is no automatic discovery. A .env file in the working directory is
// loaded first, and TASKFLOW_API_URL overrides the base URL from any
// source, which is how deployments select their API endpoint.
package config
