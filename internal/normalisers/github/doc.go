// Package github normalises GitHub webhook deliveries.
//
// Issues and pull_request payloads are decoded into go-github types and
// reduced to a [domain.ItemContext]: repository owner and name, the label
// that changed, the action, and the issue or pull request number and node ID.
//
// Normalisation is total. Missing repository, label, issue or pull_request
// objects leave the corresponding fields empty instead of failing.
package github
