// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package service exposes one method per REST operation of the
// TaskFlow API: tasks, categories, and authentication.
//
// Services are thin: they serialize filters and DTOs, name the
// endpoint, and return typed responses. They never catch — API
// failures bubble to the caller as the client's *apierror.Error, and
// only the UI layer turns them into display text.
package service
