/*
Package threshold stores the quorum of every control request type and
subtype. A value that was never set defaults to one.

All values of a type are replaced together, usually by an executed
threshold control request.
*/
package threshold
