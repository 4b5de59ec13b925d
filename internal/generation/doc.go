// Package generation turns the vocabulary corpus and a phrase template
// into a deduplicated batch of challenges, each carrying the canonical
// answer and mode-appropriate distractors.
//
// The generator is pure and synchronous: it works over the in-memory
// corpus with an injected random source, so a given corpus snapshot,
// template and seed always reproduce the same batch. It is only invoked
// after corpus loading has completed; there are no readiness retries.
package generation
