/*
 * Copyright 2022 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package lir

import (
    `testing`

    `github.com/stretchr/testify/assert`
    `github.com/stretchr/testify/require`
)

func newTestList(a *Arena) (head, tail *Instr) {
    head = a.New(OP_label)
    tail = a.New(OP_label)
    head.Ln = tail
    tail.Lp = head
    return head, tail
}

func TestInsertBeforeSplicesIntoMiddle(t *testing.T) {
    a := NewArena()
    head, tail := newTestList(a)

    mid := a.New(OP_nop)
    InsertBefore(tail, mid)

    first := a.New(OP_nop)
    InsertBefore(mid, first)

    var got []*Instr
    Walk(head, tail, func(i *Instr) { got = append(got, i) })

    require.Len(t, got, 2)
    assert.Same(t, first, got[0])
    assert.Same(t, mid, got[1])
    assert.Same(t, head, first.Lp)
    assert.Same(t, mid, first.Ln)
    assert.Same(t, tail, mid.Ln)
}

func TestInsertAfterSplicesIntoMiddle(t *testing.T) {
    a := NewArena()
    head, tail := newTestList(a)

    first := a.New(OP_nop)
    InsertAfter(head, first)

    second := a.New(OP_nop)
    InsertAfter(first, second)

    var got []*Instr
    Walk(head, tail, func(i *Instr) { got = append(got, i) })

    require.Len(t, got, 2)
    assert.Same(t, first, got[0])
    assert.Same(t, second, got[1])
}

func TestWalkNeverVisitsSentinels(t *testing.T) {
    a := NewArena()
    head, tail := newTestList(a)

    var got []*Instr
    Walk(head, tail, func(i *Instr) { got = append(got, i) })

    assert.Empty(t, got)
}

func TestNewMoveBuildsUnlinkedRegisterCopy(t *testing.T) {
    a := NewArena()

    mv := NewMove(a, 3, 5, ClassInt)

    assert.Equal(t, OP_mov, mv.Op)
    assert.Equal(t, ClassInt, mv.Class)
    assert.Equal(t, int32(3), mv.Operands[0])
    assert.Equal(t, int32(5), mv.Operands[1])
    assert.Equal(t, Reg(5), mv.UseMask)
    assert.Equal(t, Reg(3), mv.DefMask)
    assert.Nil(t, mv.Ln)
    assert.Nil(t, mv.Lp)
}

func TestCloneCopiesValueFieldsNotLinks(t *testing.T) {
    a := NewArena()
    head, tail := newTestList(a)

    src := a.New(OP_ldr_reg)
    src.Operands[0] = 4
    src.Alias = AliasInfo{Base: 7, Width: 1}
    RecomputeMask(src)
    InsertBefore(tail, src)

    clone := Clone(a, src)

    assert.Equal(t, src.Op, clone.Op)
    assert.Equal(t, src.Class, clone.Class)
    assert.Equal(t, src.Operands, clone.Operands)
    assert.Equal(t, src.UseMask, clone.UseMask)
    assert.Equal(t, src.DefMask, clone.DefMask)
    assert.Equal(t, src.Alias, clone.Alias)

    assert.NotSame(t, src, clone)
    assert.Nil(t, clone.Ln, "clone starts detached from the list")
    assert.Nil(t, clone.Lp)
    assert.Same(t, head, src.Lp, "cloning must not disturb the original's links")
}
