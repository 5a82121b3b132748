// Package progress keeps the kitchen tally: how many orders were submitted,
// are waiting or cooking, and how many finished each way.
package progress
