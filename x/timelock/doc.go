/*
Package timelock implements time locked escrow of funds.

A depositor places a balance of native coins and fungible tokens under a
lock identified by the depositor address and a lock ID. The funds can be
released only by the owner and only after the lock expiry time has
passed. Release does not move funds by itself. It returns transfer
instructions that the host executes.

A lock ID is consumed forever: a completed lock stays in the store and
its ID can never be used again by the same owner.
*/
package timelock
