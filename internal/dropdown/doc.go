// Package dropdown renders a resource collection as a single-choice list.
package dropdown
