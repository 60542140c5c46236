package emitter

// runtimeHeader and runtimeSource are the minimal allocator and
// reference-printing shims spec.md's Non-goals keep in scope, carried
// over from original_source/runtime/kush-runtime.{h,c} and trimmed to
// k_makeString (which the emitter calls for every string literal),
// k_print_i, k_print_s, and k_allocate, a calloc-backed allocation
// helper. They are written next to every emitted
// translation unit as kush_runtime.h / kush_runtime.c.
const runtimeHeader = `#ifndef KUSH_RUNTIME_H
#define KUSH_RUNTIME_H

#include <stdint.h>
#include <stdbool.h>
#include <stddef.h>

typedef struct k_ObjectHeader_t {
    bool marked;
    struct k_Object_t* next;
} k_ObjectHeader_t;

typedef struct k_Object_t {
    k_ObjectHeader_t header;
} k_Object_t;

typedef struct k_String_t {
    k_ObjectHeader_t header;
    int32_t size;
    uint8_t* value;
} k_String_t;

k_String_t* k_makeString(const char* sequence);
void k_print_i(int32_t n);
void k_print_s(k_String_t* s);
void* k_allocate(size_t size);

#endif
`

const runtimeSource = `#include "kush_runtime.h"

#include <stdio.h>
#include <stdlib.h>
#include <string.h>

void* k_allocate(size_t size) {
    return calloc(1, size);
}

k_String_t* k_makeString(const char* sequence) {
    k_String_t* s = k_allocate(sizeof(k_String_t));
    int32_t size = (int32_t) strlen(sequence);
    s->size = size;
    s->value = k_allocate(size + 1);
    memcpy(s->value, sequence, size);
    return s;
}

void k_print_i(int32_t n) {
    printf("%d\n", n);
}

void k_print_s(k_String_t* s) {
    printf("%.*s\n", s->size, (const char*) s->value);
}
`

// RuntimeFiles returns the (header, source) pair to write alongside an
// emitted translation unit.
func RuntimeFiles() (header, source string) {
	return runtimeHeader, runtimeSource
}
