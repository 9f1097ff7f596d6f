package codegen

// emitArenaPrelude emits the bump allocator shared by every generated
// module (spec §4.4): a single growable region starting at byte 8 (bytes
// 0..7 are reserved so a null/zero pointer can never alias real data),
// tracked by the $heap_top global. $arena_init makes the current heap top the
// new arena base in $current_arena and returns the previous base;
// $arena_reset rewinds $heap_top to the current base and restores the base
// it is given, so nested arenas form a stack through the values the callers
// keep. $_start is the only caller: `with` blocks are not lowered.
func emitArenaPrelude() string {
	return `  (func $arena_init (result i32)
    (local $saved i32)
    (local.set $saved (global.get $current_arena))
    (global.set $current_arena (global.get $heap_top))
    (local.get $saved))

  (func $arena_reset (param $saved i32)
    (global.set $heap_top (global.get $current_arena))
    (global.set $current_arena (local.get $saved)))

  (func $arena_alloc (param $size i32) (result i32)
    (local $ptr i32)
    (local.set $ptr (global.get $heap_top))
    (global.set $heap_top (i32.add (global.get $heap_top) (local.get $size)))
    (drop (memory.grow (i32.div_u (i32.add (local.get $size) (i32.const 65535)) (i32.const 65536))))
    (local.get $ptr))

  (func $allocate (param $size i32) (result i32)
    (call $arena_alloc (local.get $size)))
`
}
