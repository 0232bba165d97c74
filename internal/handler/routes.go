package handler

// APIV1Prefix is the canonical base path for public HTTP API v1.
// Keep a single source of truth to avoid path drift across handlers and tests.
const APIV1Prefix = "/api/v1"

// HeaderAdminToken carries the token that unlocks private fields.
const HeaderAdminToken = "X-Admin-Token"

// HeaderRequestID is echoed back on every response.
const HeaderRequestID = "X-Request-ID"
