// Package chart draws the dashboard: a bubble chart of price against
// execution date, a stacked bar chart of yearly capacity, and a pie of
// cumulative capacity per region, composed into one figure.
package chart
