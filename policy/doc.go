// Package policy decides whether an oversized pool resize may proceed.
package policy
