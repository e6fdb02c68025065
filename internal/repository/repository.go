// Package repository is the relational store gateway: it translates
// validated query descriptors into parameterized statements and runs the
// ordered cascade mutations inside single transactions.
package repository
