// Package collection routes documents and queries to named vector
// collections.
//
// Collection names produced by a language model are free text; NormalizeName
// folds them onto a stable canonical form so "Policy Docs", "policy-docs"
// and "policy_docs_collection" all land in the same collection. Routing
// never fails the caller: any classification problem falls back to the
// unclassified collection.
package collection
