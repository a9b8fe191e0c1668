// Package domain contains the core domain model for predictor.
//
// The domain is transport- and persistence-agnostic: it does not depend on JSON files,
// net/http, or the LLM provider. Infra/adapters map into/from these types.
package domain
