package model

import (
	"fmt"
	"time"

	"github.com/cqkv/cmdlog/utils"
)

// Constructors compute body_length once from the same lengths they store in the
// record; the encoder must end up writing exactly that many body bytes.

func preview(key []byte) []byte {
	if len(key) > 32 {
		return key[:32]
	}
	return key
}

func bodyLength(n int) uint32 {
	return uint32(utils.Align8(n))
}

func checkKey(key []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	return nil
}

func checkBkey(bkey BkeyRange) error {
	if bkey.Len == BkeyNull || bkey.Len > MaxBkeyLength {
		return ErrInvalidBkey
	}
	if len(bkey.Val) < RealBkeyLen(bkey.Len) {
		return ErrInvalidBkey
	}
	return nil
}

// ConstructSnapshotItem fills log with the current durable state of a live item and
// returns its body length, which the caller uses to size the encode buffer.
// Key, value and range bytes are borrowed from the item. It panics on an item
// CheckItem rejects, the lengths would not fit the record.
func ConstructSnapshotItem(log *ItemLinkLog, it Item) uint32 {
	if err := CheckItem(it); err != nil {
		panic(fmt.Sprintf("model: cannot log item %q: %v", preview(it.Key()), err))
	}
	log.Key = it.Key()
	log.Value = it.Value()

	cm := &log.Common
	cm.ItemType = it.Type()
	cm.KeyLen = uint16(len(log.Key))
	cm.ValueLen = uint32(len(log.Value))
	cm.Flags = it.Flags()
	cm.ExpireTime = it.ExpireTime()

	var naddition int
	if IsCollection(cm.ItemType) {
		info := it.CollMeta()
		meta := &CollPayload{
			OvflAction: info.OvflAction,
			MFlags:     info.MFlags,
			MCount:     info.MCount,
			MaxBkrLen:  BkeyNull,
		}
		if cm.ItemType == ItemTypeBTree {
			meta.MaxBkrLen = info.MaxBkeyRange.Len
			meta.MaxBkr = info.MaxBkeyRange.Bytes()
		}
		naddition = RealBkeyLen(meta.MaxBkrLen)
		log.Payload = meta
	} else {
		log.Payload = &CASPayload{CAS: it.CAS()}
	}

	log.Hdr.LogType = LogItLink
	log.Hdr.UpdType = createUpdateType(cm.ItemType)
	log.Hdr.BodyLength = bodyLength(ItemLinkFixedSize + naddition + int(cm.KeyLen) + int(cm.ValueLen))
	return log.Hdr.BodyLength
}

// ConstructSnapshotHead marks the start of a snapshot stream
func ConstructSnapshotHead(log *SnapshotHeadLog, createdAt time.Time) uint32 {
	log.Version = SnapshotFormatVersion
	log.CreatedAt = createdAt.UnixNano()
	log.Hdr.LogType = LogSnapshotHead
	log.Hdr.UpdType = UpdNone
	log.Hdr.BodyLength = bodyLength(SnapshotHeadFixedSize)
	return log.Hdr.BodyLength
}

// ConstructSnapshotTail marks the end of a snapshot stream, it has no body
func ConstructSnapshotTail(log *SnapshotTailLog) uint32 {
	log.Hdr.LogType = LogSnapshotTail
	log.Hdr.UpdType = UpdNone
	log.Hdr.BodyLength = 0
	return 0
}

// NewItemLinkLog logs a stored item, same layout as the snapshot item record
func NewItemLinkLog(it Item) *ItemLinkLog {
	log := new(ItemLinkLog)
	ConstructSnapshotItem(log, it)
	return log
}

func NewItemUnlinkLog(key []byte) (*ItemUnlinkLog, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	log := &ItemUnlinkLog{KeyLen: uint16(len(key)), Key: key}
	log.Hdr = LogHeader{
		LogType:    LogItUnlink,
		UpdType:    UpdDelete,
		BodyLength: bodyLength(ItemUnlinkFixedSize + len(key)),
	}
	return log, nil
}

type ArithmeticOp struct {
	Incr       bool
	Delta      uint64
	Create     bool
	Initial    uint64
	Flags      uint32
	ExpireTime uint32
	// cas of the item after the operation
	CAS uint64
}

func NewItemArithmeticLog(key []byte, op ArithmeticOp) (*ItemArithmeticLog, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	log := &ItemArithmeticLog{
		KeyLen:     uint16(len(key)),
		Create:     op.Create,
		Flags:      op.Flags,
		ExpireTime: op.ExpireTime,
		Delta:      op.Delta,
		Initial:    op.Initial,
		CAS:        op.CAS,
		Key:        key,
	}
	upd := UpdDecr
	if op.Incr {
		upd = UpdIncr
	}
	log.Hdr = LogHeader{
		LogType:    LogItArithmetic,
		UpdType:    upd,
		BodyLength: bodyLength(ItemArithmeticFixedSize + len(key)),
	}
	return log, nil
}

// NewItemSetattrLog logs an attribute change. meta is ignored for UpdSetattrExptime
// and its max bkey range is only logged for UpdSetattrExptimeInfoBkey.
func NewItemSetattrLog(key []byte, upd UpdateType, exptime uint32, meta *CollMeta) (*ItemSetattrLog, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	log := &ItemSetattrLog{
		KeyLen:     uint16(len(key)),
		ExpireTime: exptime,
		MaxBkrLen:  BkeyNull,
		Key:        key,
	}
	switch upd {
	case UpdSetattrExptime:
	case UpdSetattrExptimeInfo, UpdSetattrExptimeInfoBkey:
		if meta == nil {
			return nil, ErrInvalidUpdateType
		}
		log.OvflAction = meta.OvflAction
		log.MFlags = meta.MFlags
		log.MaxCount = meta.MCount
		if upd == UpdSetattrExptimeInfoBkey {
			r := meta.MaxBkeyRange
			if !r.IsNull() {
				if err := checkBkey(r); err != nil {
					return nil, err
				}
			}
			log.MaxBkrLen = r.Len
			log.MaxBkr = r.Bytes()
		}
	default:
		return nil, ErrInvalidUpdateType
	}
	log.Hdr = LogHeader{
		LogType:    LogItSetattr,
		UpdType:    upd,
		BodyLength: bodyLength(ItemSetattrFixedSize + len(key) + RealBkeyLen(log.MaxBkrLen)),
	}
	return log, nil
}

func createAttrs(create *CollAttrs) (bool, CollAttrs) {
	if create == nil {
		return false, CollAttrs{}
	}
	return true, *create
}

// NewListElemInsertLog logs an insert at index; a non nil create means the list was
// created by this insert with those attributes.
func NewListElemInsertLog(key []byte, index int32, totalCount uint32, value []byte, create *CollAttrs) (*ListElemInsertLog, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	log := &ListElemInsertLog{
		KeyLen:     uint16(len(key)),
		ValueLen:   uint32(len(value)),
		Index:      index,
		TotalCount: totalCount,
		Key:        key,
		Value:      value,
	}
	log.Create, log.Attrs = createAttrs(create)
	log.Hdr = LogHeader{
		LogType:    LogListElemInsert,
		UpdType:    UpdListElemInsert,
		BodyLength: bodyLength(ListElemInsertFixedSize + len(key) + len(value)),
	}
	return log, nil
}

func NewListElemDeleteLog(key []byte, index int32, count uint32, dropIfEmpty bool) (*ListElemDeleteLog, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	log := &ListElemDeleteLog{
		KeyLen:      uint16(len(key)),
		DropIfEmpty: dropIfEmpty,
		Index:       index,
		Count:       count,
		Key:         key,
	}
	log.Hdr = LogHeader{
		LogType:    LogListElemDelete,
		UpdType:    UpdListElemDelete,
		BodyLength: bodyLength(ListElemDeleteFixedSize + len(key)),
	}
	return log, nil
}

func NewSetElemInsertLog(key, value []byte, create *CollAttrs) (*SetElemInsertLog, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	log := &SetElemInsertLog{
		KeyLen:   uint16(len(key)),
		ValueLen: uint32(len(value)),
		Key:      key,
		Value:    value,
	}
	log.Create, log.Attrs = createAttrs(create)
	log.Hdr = LogHeader{
		LogType:    LogSetElemInsert,
		UpdType:    UpdSetElemInsert,
		BodyLength: bodyLength(SetElemInsertFixedSize + len(key) + len(value)),
	}
	return log, nil
}

func NewSetElemDeleteLog(key, value []byte, dropIfEmpty bool) (*SetElemDeleteLog, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	log := &SetElemDeleteLog{
		KeyLen:      uint16(len(key)),
		DropIfEmpty: dropIfEmpty,
		ValueLen:    uint32(len(value)),
		Key:         key,
		Value:       value,
	}
	log.Hdr = LogHeader{
		LogType:    LogSetElemDelete,
		UpdType:    UpdSetElemDelete,
		BodyLength: bodyLength(SetElemDeleteFixedSize + len(key) + len(value)),
	}
	return log, nil
}

func NewMapElemInsertLog(key, field, value []byte, create *CollAttrs) (*MapElemInsertLog, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if len(field) > MaxFieldLength {
		return nil, ErrFieldTooLong
	}
	log := &MapElemInsertLog{
		KeyLen:   uint16(len(key)),
		FieldLen: uint8(len(field)),
		ValueLen: uint32(len(value)),
		Key:      key,
		Field:    field,
		Value:    value,
	}
	log.Create, log.Attrs = createAttrs(create)
	log.Hdr = LogHeader{
		LogType:    LogMapElemInsert,
		UpdType:    UpdMapElemInsert,
		BodyLength: bodyLength(MapElemInsertFixedSize + len(key) + len(field) + len(value)),
	}
	return log, nil
}

// NewMapElemDeleteLog with an empty field deletes all fields
func NewMapElemDeleteLog(key, field []byte, dropIfEmpty bool) (*MapElemDeleteLog, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if len(field) > MaxFieldLength {
		return nil, ErrFieldTooLong
	}
	log := &MapElemDeleteLog{
		KeyLen:      uint16(len(key)),
		DropIfEmpty: dropIfEmpty,
		FieldLen:    uint8(len(field)),
		Key:         key,
		Field:       field,
	}
	log.Hdr = LogHeader{
		LogType:    LogMapElemDelete,
		UpdType:    UpdMapElemDelete,
		BodyLength: bodyLength(MapElemDeleteFixedSize + len(key) + len(field)),
	}
	return log, nil
}

func NewBtElemInsertLog(key []byte, bkey BkeyRange, eflag, value []byte, upsert bool, create *CollAttrs) (*BtElemInsertLog, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if err := checkBkey(bkey); err != nil {
		return nil, err
	}
	if len(eflag) > MaxEflagLength {
		return nil, ErrEflagTooLong
	}
	log := &BtElemInsertLog{
		KeyLen:   uint16(len(key)),
		NBkey:    bkey.Len,
		NEflag:   uint8(len(eflag)),
		ValueLen: uint32(len(value)),
		Key:      key,
		Bkey:     bkey.Bytes(),
		Eflag:    eflag,
		Value:    value,
	}
	log.Create, log.Attrs = createAttrs(create)
	upd := UpdBtElemInsert
	if upsert {
		upd = UpdBtElemUpsert
	}
	log.Hdr = LogHeader{
		LogType:    LogBtElemInsert,
		UpdType:    upd,
		BodyLength: bodyLength(BtElemInsertFixedSize + len(key) + RealBkeyLen(bkey.Len) + len(eflag) + len(value)),
	}
	return log, nil
}

func NewBtElemDeleteLog(key []byte, bkey BkeyRange, dropIfEmpty bool) (*BtElemDeleteLog, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if err := checkBkey(bkey); err != nil {
		return nil, err
	}
	log := &BtElemDeleteLog{
		KeyLen:      uint16(len(key)),
		NBkey:       bkey.Len,
		DropIfEmpty: dropIfEmpty,
		Key:         key,
		Bkey:        bkey.Bytes(),
	}
	log.Hdr = LogHeader{
		LogType:    LogBtElemDelete,
		UpdType:    UpdBtElemDelete,
		BodyLength: bodyLength(BtElemDeleteFixedSize + len(key) + RealBkeyLen(bkey.Len)),
	}
	return log, nil
}

func NewBtElemArithmeticLog(key []byte, bkey BkeyRange, incr bool, delta uint64, create bool, initial uint64) (*BtElemArithmeticLog, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if err := checkBkey(bkey); err != nil {
		return nil, err
	}
	log := &BtElemArithmeticLog{
		KeyLen:  uint16(len(key)),
		NBkey:   bkey.Len,
		Create:  create,
		Incr:    incr,
		Delta:   delta,
		Initial: initial,
		Key:     key,
		Bkey:    bkey.Bytes(),
	}
	log.Hdr = LogHeader{
		LogType:    LogBtElemArithmetic,
		UpdType:    UpdBtElemArithmetic,
		BodyLength: bodyLength(BtElemArithmeticFixedSize + len(key) + RealBkeyLen(bkey.Len)),
	}
	return log, nil
}
