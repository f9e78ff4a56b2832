// Package lib groups the supporting libraries that do not belong to a layer:
// background jobs (asynq), e-mail delivery (Resend), PDF reports, the
// business-day calendar and text helpers.
package lib
