/*
Package chaintest provides test doubles and helpers for testing handlers,
decorators and models of the billchain application.
*/
package chaintest
